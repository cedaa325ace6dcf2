package yamllayout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	tmp := t.TempDir()
	p := filepath.Join(tmp, "layout.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadLayout_Valid(t *testing.T) {
	p := writeLayout(t, `
package: cbma
text:
  fwe_note: "FWE-corrected (montecarlo)"
sections:
  - name: Diagnostics
    reportlets:
      - bids: {value: z, diag: focuscounter, tab: counts, tail: positive}
        title: FocusCounter
        caption: "Contribution table. {{fwe_note}}."
      - bids: {value: z, suffix: figure}
        iframe: true
`)

	l := NewLoader()
	doc, err := l.LoadLayout(p)
	if err != nil {
		t.Fatalf("LoadLayout error: %v", err)
	}

	if doc.Package != "cbma" {
		t.Fatalf("expected package=cbma, got=%s", doc.Package)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got=%d", len(doc.Sections))
	}
	if doc.Sections[0].Name != "Diagnostics" {
		t.Fatalf("expected section name=Diagnostics, got=%s", doc.Sections[0].Name)
	}

	rls := doc.Sections[0].Reportlets
	if len(rls) != 2 {
		t.Fatalf("expected 2 reportlets, got=%d", len(rls))
	}
	if rls[0].Selector[domain.KeyDiag] != "focuscounter" {
		t.Fatalf("unexpected selector: %v", rls[0].Selector)
	}
	if rls[0].IFrame {
		t.Fatalf("iframe must default to false when absent")
	}
	if !rls[1].IFrame {
		t.Fatalf("expected iframe=true")
	}
	if rls[0].Caption != "Contribution table. {{fwe_note}}." {
		t.Fatalf("caption must stay unresolved, got=%q", rls[0].Caption)
	}
}

func TestLoadLayout_MissingPackage(t *testing.T) {
	p := writeLayout(t, `
sections:
  - name: Summary
    reportlets:
      - bids: {value: z}
`)
	l := NewLoader()
	_, err := l.LoadLayout(p)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidLayout) {
		t.Fatalf("expected KindInvalidLayout, got: %v", err)
	}
}

func TestLoadLayout_EmptySelector(t *testing.T) {
	p := writeLayout(t, `
package: cbma
sections:
  - name: Summary
    reportlets:
      - title: orphan
`)
	l := NewLoader()
	_, err := l.LoadLayout(p)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadLayout_MissingSectionName(t *testing.T) {
	p := writeLayout(t, `
package: cbma
sections:
  - reportlets:
      - bids: {value: z}
`)
	l := NewLoader()
	_, err := l.LoadLayout(p)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadLayout_NotFound(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadLayout(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	p := writeLayout(t, `
package: cbma
text:
  fwe_note: "FWE-corrected (montecarlo)"
sections:
  - name: Datasets
    reportlets:
      - bids: {dset: "1", suffix: summary}
        title: "Dataset 1"
        subtitle: "Semantic knowledge"
        caption: "{{fwe_note}}"
      - bids: {dset: "2", suffix: summary}
  - name: Diagnostics
    reportlets:
      - bids: {value: z, diag: jackknife, tab: counts, tail: positive}
        iframe: true
        description: "Jackknife contribution table."
`)

	l := NewLoader()
	first, err := l.LoadLayout(p)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}

	b, err := Marshal(first)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	p2 := filepath.Join(t.TempDir(), "roundtrip.yaml")
	if err := os.WriteFile(p2, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	second, err := l.LoadLayout(p2)
	if err != nil {
		t.Fatalf("LoadLayout (roundtrip): %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("round-trip mismatch (-first +second):\n%s", diff)
	}
}

func TestListLayouts(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "layouts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	for _, name := range []string{"pairwise.yaml", "default.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("package: x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	l := NewLoader()
	refs, err := l.ListLayouts(root)
	if err != nil {
		t.Fatalf("ListLayouts: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Name != "default" || refs[1].Name != "pairwise" {
		t.Fatalf("unexpected order: %v", refs)
	}
}
