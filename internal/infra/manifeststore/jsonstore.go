package manifeststore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/ports"
	"github.com/google/renameio/v2"
)

const defaultReportsDir = "reports"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	reportsDir := cfg.Paths.ReportsDir
	if strings.TrimSpace(reportsDir) == "" {
		reportsDir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: reportsDir,
		writeIndex:     false,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ManifestStore = (*JSONStore)(nil)

func (s *JSONStore) SaveManifest(m domain.RenderManifest) (string, error) {
	dir := filepath.Join(s.rootDir, s.reportsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "manifeststore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := m.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := m
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	layoutPart := m.LayoutName
	if strings.TrimSpace(layoutPart) == "" {
		layoutPart = strings.TrimSuffix(filepath.Base(m.LayoutPath), filepath.Ext(m.LayoutPath))
	}
	slug := slugify(layoutPart)
	if slug == "" {
		slug = "report"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	toSave.ID = id

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "manifeststore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if err := renameio.WriteFile(path, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "manifeststore.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

// LoadManifest accepts either a manifest id (filename stem under the reports
// dir) or a full path to a manifest file.
func (s *JSONStore) LoadManifest(idOrPath string) (domain.RenderManifest, error) {
	path := idOrPath
	if !strings.HasSuffix(path, ".json") && !strings.Contains(path, string(filepath.Separator)) {
		path = filepath.Join(s.rootDir, s.reportsDirName, idOrPath+".json")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.RenderManifest{}, &domain.OpError{
			Op:   "manifeststore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var m domain.RenderManifest
	if err := json.Unmarshal(b, &m); err != nil {
		return domain.RenderManifest{}, &domain.OpError{
			Op:   "manifeststore.load",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return m, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, m domain.RenderManifest) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Layout    string    `json:"layout"`
		Package   string    `json:"package"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Layout:    m.LayoutName,
		Package:   m.Package,
		StartedAt: m.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
