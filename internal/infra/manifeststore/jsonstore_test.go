package manifeststore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestSaveManifest(t *testing.T) {
	root := t.TempDir()
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(fixedNow))

	m := domain.RenderManifest{
		LayoutName: "Pairwise CBMA",
		Package:    "cbma",
		Reportlets: []domain.ReportletResult{
			{Section: "Results", Selector: "dset-1_value-z", Status: domain.StatusResolved, Artifact: "value-z_dset-1"},
		},
	}

	id, err := s.SaveManifest(m)
	if err != nil {
		t.Fatalf("SaveManifest: %v", err)
	}
	if id != "20240301T123000Z_pairwise-cbma" {
		t.Fatalf("unexpected id: %s", id)
	}

	path := filepath.Join(root, "reports", id+".json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected manifest file: %v", err)
	}

	loaded, err := s.LoadManifest(id)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if loaded.ID != id {
		t.Fatalf("expected id persisted, got %q", loaded.ID)
	}
	if loaded.StartedAt.IsZero() {
		t.Fatalf("expected StartedAt backfilled")
	}
	if len(loaded.Reportlets) != 1 || loaded.Reportlets[0].Status != domain.StatusResolved {
		t.Fatalf("unexpected reportlets: %+v", loaded.Reportlets)
	}
}

func TestSaveManifest_Index(t *testing.T) {
	root := t.TempDir()
	s := NewJSONStore(root, domain.DefaultConfig(), WithNow(fixedNow), WithIndex(true))

	if _, err := s.SaveManifest(domain.RenderManifest{LayoutName: "default", Package: "cbma"}); err != nil {
		t.Fatalf("SaveManifest: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(root, "reports", "index.jsonl"))
	if err != nil {
		t.Fatalf("expected index: %v", err)
	}
	if !strings.Contains(string(b), `"layout":"default"`) {
		t.Fatalf("unexpected index line: %s", b)
	}
}

func TestLoadManifest_NotFound(t *testing.T) {
	s := NewJSONStore(t.TempDir(), domain.DefaultConfig())
	_, err := s.LoadManifest("missing-id")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Pairwise CBMA", "pairwise-cbma"},
		{"  default  ", "default"},
		{"a__b..c", "a-b-c"},
		{"***", ""},
	}
	for _, c := range cases {
		if got := slugify(c.in); got != c.want {
			t.Errorf("slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
