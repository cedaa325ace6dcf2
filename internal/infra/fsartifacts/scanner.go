package fsartifacts

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/ports"
)

// Scanner walks a pipeline output directory and collects the artifacts whose
// filenames follow the key-value entity convention. Files that do not parse
// (READMEs, hidden files, stray notes) are skipped: they are not addressable
// by selectors.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

var _ ports.ArtifactScanner = (*Scanner)(nil)

func (s *Scanner) Scan(dir string) ([]domain.Artifact, error) {
	var out []domain.Artifact

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		a, ok := domain.ParseArtifactName(path)
		if !ok {
			return nil
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "fsartifacts.scan",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	// Deterministic order regardless of walk order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}
