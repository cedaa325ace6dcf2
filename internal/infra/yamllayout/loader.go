package yamllayout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	layoutsDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{layoutsDir: "layouts"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithLayoutsDir(dir string) Option {
	return func(l *Loader) { l.layoutsDir = dir }
}

var _ ports.LayoutLoader = (*Loader)(nil)

func (l *Loader) LoadLayout(path string) (domain.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, &domain.OpError{
			Op:   "yamllayout.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var yl yamlLayout
	if err := yaml.Unmarshal(b, &yl); err != nil {
		return domain.Document{}, &domain.OpError{
			Op:   "yamllayout.load",
			Kind: domain.KindInvalidLayout,
			Path: path,
			Err:  err,
		}
	}

	doc, err := mapAndValidate(path, yl)
	if err != nil {
		return domain.Document{}, err
	}

	return doc, nil
}

func (l *Loader) ListLayouts(root string) ([]domain.LayoutRef, error) {
	dir := filepath.Join(root, l.layoutsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamllayout.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.LayoutRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		refs = append(refs, domain.LayoutRef{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Marshal re-serializes a document. Section and reportlet order is preserved;
// caption/description values are emitted as authored (text references are not
// expanded).
func Marshal(doc domain.Document) ([]byte, error) {
	yl := yamlLayout{
		Package:  doc.Package,
		Text:     doc.Text,
		Sections: make([]yamlSection, 0, len(doc.Sections)),
	}

	for _, s := range doc.Sections {
		ys := yamlSection{
			Name:       s.Name,
			Reportlets: make([]yamlReportlet, 0, len(s.Reportlets)),
		}
		for _, r := range s.Reportlets {
			ys.Reportlets = append(ys.Reportlets, yamlReportlet{
				BIDS:        r.Selector,
				Title:       r.Title,
				Subtitle:    r.Subtitle,
				SubSubtitle: r.SubSubtitle,
				Caption:     r.Caption,
				Description: r.Description,
				IFrame:      r.IFrame,
			})
		}
		yl.Sections = append(yl.Sections, ys)
	}

	b, err := yaml.Marshal(yl)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamllayout.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return b, nil
}

type yamlLayout struct {
	Package  string            `yaml:"package"`
	Text     map[string]string `yaml:"text,omitempty"`
	Sections []yamlSection     `yaml:"sections"`
}

type yamlSection struct {
	Name       string          `yaml:"name"`
	Reportlets []yamlReportlet `yaml:"reportlets"`
}

type yamlReportlet struct {
	BIDS map[string]string `yaml:"bids"`

	Title       string `yaml:"title,omitempty"`
	Subtitle    string `yaml:"subtitle,omitempty"`
	SubSubtitle string `yaml:"subsubtitle,omitempty"`
	Caption     string `yaml:"caption,omitempty"`
	Description string `yaml:"description,omitempty"`
	IFrame      bool   `yaml:"iframe,omitempty"`
}

func mapAndValidate(path string, yl yamlLayout) (domain.Document, error) {
	if strings.TrimSpace(yl.Package) == "" {
		return domain.Document{}, invalidField(path, "package", "package identifier is required")
	}
	if len(yl.Sections) == 0 {
		return domain.Document{}, invalidField(path, "sections", "at least one section is required")
	}

	doc := domain.Document{
		Package:  yl.Package,
		Text:     domain.TextBlocks(yl.Text),
		Sections: make([]domain.Section, 0, len(yl.Sections)),
	}
	if doc.Text == nil {
		doc.Text = domain.TextBlocks{}
	}

	for i, s := range yl.Sections {
		sectionPrefix := fmt.Sprintf("sections[%d]", i)

		if strings.TrimSpace(s.Name) == "" {
			return domain.Document{}, invalidField(path, sectionPrefix+".name", "section name is required")
		}

		sec := domain.Section{
			Name:       s.Name,
			Reportlets: make([]domain.Reportlet, 0, len(s.Reportlets)),
		}

		for j, r := range s.Reportlets {
			fieldPrefix := fmt.Sprintf("%s.reportlets[%d]", sectionPrefix, j)

			if len(r.BIDS) == 0 {
				return domain.Document{}, invalidField(path, fieldPrefix+".bids", "selector is required")
			}
			for k, v := range r.BIDS {
				if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
					return domain.Document{}, invalidField(path, fieldPrefix+".bids", "empty selector key or value")
				}
			}

			sec.Reportlets = append(sec.Reportlets, domain.Reportlet{
				Selector:    domain.Selector(r.BIDS),
				Title:       r.Title,
				Subtitle:    r.Subtitle,
				SubSubtitle: r.SubSubtitle,
				Caption:     r.Caption,
				Description: r.Description,
				IFrame:      r.IFrame,
			})
		}

		doc.Sections = append(doc.Sections, sec)
	}

	return doc, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamllayout.validate",
		Kind: domain.KindInvalidLayout,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
