package htmlreport

import (
	"context"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/ports"
	"github.com/google/renameio/v2"
)

const outputName = "report.html"

// Renderer produces a single self-describing HTML page from a resolved
// report. Figures and interactive frames are referenced by relative path;
// tables and text fragments are inlined.
type Renderer struct {
	outputName string
	tmpl       *template.Template
}

type Option func(*Renderer)

// WithOutputName overrides the output filename (default report.html).
func WithOutputName(name string) Option {
	return func(r *Renderer) { r.outputName = name }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		outputName: outputName,
		tmpl:       template.Must(template.New("report").Parse(reportTemplate)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.Renderer = (*Renderer)(nil)

func (r *Renderer) Render(ctx context.Context, rep domain.ResolvedReport, outDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "htmlreport.mkdir",
			Kind: domain.KindExecution,
			Path: outDir,
			Err:  err,
		}
	}

	view, err := buildView(rep, outDir)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, view); err != nil {
		return "", &domain.OpError{
			Op:   "htmlreport.render",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	out := filepath.Join(outDir, r.outputName)
	if err := renameio.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "htmlreport.write",
			Kind: domain.KindExecution,
			Path: out,
			Err:  err,
		}
	}
	return out, nil
}

type reportView struct {
	Package     string
	LayoutName  string
	GeneratedAt string
	Sections    []sectionView
}

type sectionView struct {
	Name  string
	Items []itemView
}

// itemView is what the template actually sees; exactly one of the embed
// fields is populated depending on Kind.
type itemView struct {
	Title       string
	Subtitle    string
	SubSubtitle string
	Caption     string
	Description string

	Kind     string // figure | iframe | table | text | missing
	Src      string
	Table    [][]string
	Text     string
	Selector string
}

func buildView(rep domain.ResolvedReport, outDir string) (reportView, error) {
	view := reportView{
		Package:     rep.Package,
		LayoutName:  rep.LayoutName,
		GeneratedAt: rep.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
	}

	for _, sec := range rep.Sections {
		sv := sectionView{Name: sec.Name}
		for _, rr := range sec.Reportlets {
			item, err := buildItem(rr, outDir)
			if err != nil {
				return reportView{}, err
			}
			sv.Items = append(sv.Items, item)
		}
		view.Sections = append(view.Sections, sv)
	}

	return view, nil
}

func buildItem(rr domain.ResolvedReportlet, outDir string) (itemView, error) {
	item := itemView{
		Title:       rr.Reportlet.Title,
		Subtitle:    rr.Reportlet.Subtitle,
		SubSubtitle: rr.Reportlet.SubSubtitle,
		Caption:     rr.Reportlet.Caption,
		Description: rr.Reportlet.Description,
		Selector:    domain.FormatSelector(rr.Reportlet.Selector),
	}

	if rr.Status != domain.StatusResolved {
		item.Kind = "missing"
		return item, nil
	}

	a := rr.Artifact
	switch {
	case rr.Reportlet.IFrame || a.Kind == domain.KindInteractive:
		item.Kind = "iframe"
		item.Src = relPath(outDir, a.Path)

	case a.Kind == domain.KindFigure:
		item.Kind = "figure"
		item.Src = relPath(outDir, a.Path)

	case a.Kind == domain.KindTable:
		rows, err := readTable(a.Path)
		if err != nil {
			return itemView{}, err
		}
		item.Kind = "table"
		item.Table = rows

	default:
		b, err := os.ReadFile(a.Path)
		if err != nil {
			return itemView{}, &domain.OpError{
				Op:   "htmlreport.embed",
				Kind: domain.KindExecution,
				Path: a.Path,
				Err:  err,
			}
		}
		item.Kind = "text"
		item.Text = string(b)
	}

	return item, nil
}

func relPath(outDir, target string) string {
	rel, err := filepath.Rel(outDir, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

// readTable parses a TSV/CSV fragment into rows. Delimiter is inferred from
// the extension.
func readTable(path string) ([][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "htmlreport.table",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	sep := "\t"
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		sep = ","
	}

	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
		rows = append(rows, strings.Split(line, sep))
	}
	return rows, nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Package}} report</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: .3rem; }
h2 { border-bottom: 1px solid #bbb; padding-bottom: .2rem; margin-top: 2.5rem; }
figure { margin: 1.5rem 0; }
figcaption { font-size: .9rem; color: #555; margin-top: .4rem; }
img { max-width: 100%; }
iframe { border: none; width: 100%; height: 32rem; }
table { border-collapse: collapse; margin: 1rem 0; }
td, th { border: 1px solid #ccc; padding: .25rem .6rem; font-size: .9rem; }
.missing { color: #a33; font-style: italic; }
.meta { color: #777; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Package}} report</h1>
<p class="meta">layout: {{.LayoutName}} &middot; generated: {{.GeneratedAt}}</p>
{{range .Sections}}
<h2>{{.Name}}</h2>
{{range .Items}}
{{if .Title}}<h3>{{.Title}}</h3>{{end}}
{{if .Subtitle}}<h4>{{.Subtitle}}</h4>{{end}}
{{if .SubSubtitle}}<h5>{{.SubSubtitle}}</h5>{{end}}
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if eq .Kind "figure"}}
<figure><img src="{{.Src}}" alt="{{.Selector}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>
{{else if eq .Kind "iframe"}}
<iframe src="{{.Src}}" seamless></iframe>
{{if .Caption}}<p class="meta">{{.Caption}}</p>{{end}}
{{else if eq .Kind "table"}}
<table>
{{range .Table}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{if .Caption}}<p class="meta">{{.Caption}}</p>{{end}}
{{else if eq .Kind "text"}}
<pre>{{.Text}}</pre>
{{if .Caption}}<p class="meta">{{.Caption}}</p>{{end}}
{{else}}
<p class="missing">No artifact matched selector {{.Selector}}.</p>
{{end}}
{{end}}
{{end}}
</body>
</html>
`
