package fsartifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"value-z_dset-1.png",
		"value-z_dset-2.png",
		"diag-jackknife_tab-counts_tail-positive.tsv",
		"README.md", // not addressable, skipped
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	// Nested output dirs are scanned too.
	sub := filepath.Join(dir, "figures")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "value-p_dset-1.svg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewScanner()
	arts, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(arts) != 4 {
		t.Fatalf("expected 4 artifacts, got %d", len(arts))
	}

	// Sorted by name.
	if arts[0].Name != "diag-jackknife_tab-counts_tail-positive" {
		t.Fatalf("unexpected first artifact: %s", arts[0].Name)
	}
	if arts[0].Kind != domain.KindTable {
		t.Fatalf("expected table kind, got %s", arts[0].Kind)
	}
}

func TestScan_MissingDir(t *testing.T) {
	s := NewScanner()
	_, err := s.Scan(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}
