package htmlreport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

func testReport(t *testing.T) (domain.ResolvedReport, string) {
	t.Helper()
	root := t.TempDir()

	figPath := filepath.Join(root, "artifacts", "value-z_dset-1.png")
	tabPath := filepath.Join(root, "artifacts", "diag-jackknife_tab-counts.tsv")
	if err := os.MkdirAll(filepath.Dir(figPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(figPath, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(tabPath, []byte("id\tcount\nstudy-1\t4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fig, _ := domain.ParseArtifactName(figPath)
	tab, _ := domain.ParseArtifactName(tabPath)

	rep := domain.ResolvedReport{
		Package:     "cbma",
		LayoutName:  "default",
		GeneratedAt: time.Unix(1700000000, 0),
		Sections: []domain.ResolvedSection{
			{
				Name: "Results",
				Reportlets: []domain.ResolvedReportlet{
					{
						Reportlet: domain.Reportlet{
							Selector: domain.Selector{domain.KeyValue: "z", domain.KeyDset: "1"},
							Title:    "Dataset 1",
							Caption:  "Z map",
						},
						Status:   domain.StatusResolved,
						Artifact: fig,
					},
					{
						Reportlet: domain.Reportlet{
							Selector: domain.Selector{domain.KeyDiag: "jackknife"},
						},
						Status:   domain.StatusResolved,
						Artifact: tab,
					},
				},
			},
			{
				Name: "Interactive",
				Reportlets: []domain.ResolvedReportlet{
					{
						Reportlet: domain.Reportlet{
							Selector: domain.Selector{domain.KeySuffix: "figure"},
							IFrame:   true,
						},
						Status:   domain.StatusResolved,
						Artifact: fig,
					},
					{
						Reportlet: domain.Reportlet{
							Selector: domain.Selector{domain.KeyTail: "negative"},
						},
						Status: domain.StatusMissing,
					},
				},
			},
		},
	}
	return rep, root
}

func TestRender(t *testing.T) {
	rep, root := testReport(t)
	outDir := filepath.Join(root, "reports")

	r := New()
	out, err := r.Render(context.Background(), rep, outDir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(b)

	// Sections in document order.
	results := strings.Index(html, "<h2>Results</h2>")
	interactive := strings.Index(html, "<h2>Interactive</h2>")
	if results < 0 || interactive < 0 || results > interactive {
		t.Fatalf("sections missing or out of order")
	}

	if !strings.Contains(html, `<img src="../artifacts/value-z_dset-1.png"`) {
		t.Fatalf("expected relative figure path, got:\n%s", html)
	}
	if !strings.Contains(html, "<figcaption>Z map</figcaption>") {
		t.Fatalf("expected figure caption")
	}
	if !strings.Contains(html, "<td>study-1</td>") {
		t.Fatalf("expected inlined table cell")
	}
	if !strings.Contains(html, "<iframe src=") {
		t.Fatalf("expected iframe for flagged reportlet")
	}
	if !strings.Contains(html, "No artifact matched selector tail-negative") {
		t.Fatalf("expected missing placeholder")
	}
}

func TestRender_OutputName(t *testing.T) {
	rep, root := testReport(t)

	r := New(WithOutputName("index.html"))
	out, err := r.Render(context.Background(), rep, filepath.Join(root, "reports"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if filepath.Base(out) != "index.html" {
		t.Fatalf("unexpected output name: %s", out)
	}
}
