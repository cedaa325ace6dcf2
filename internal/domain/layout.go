package domain

// Selector is the key/value filter set identifying which pipeline artifact a
// reportlet embeds. An artifact matches when every selector pair appears among
// its entities.
type Selector map[string]string

// Recognized selector keys. The set is open: pipelines may introduce new
// entities without a schema change, but these are the ones the stock layouts
// use.
const (
	KeyValue  = "value"
	KeyDset   = "dset"
	KeySuffix = "suffix"
	KeyTab    = "tab"
	KeyTail   = "tail"
	KeyDiag   = "diag"
)

// Matches reports whether every selector pair appears in the entity map.
// An empty selector matches nothing rather than everything; a reportlet
// without filters cannot identify an artifact.
func (s Selector) Matches(entities map[string]string) bool {
	if len(s) == 0 {
		return false
	}
	for k, want := range s {
		got, ok := entities[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// TextBlocks holds reusable named text, referenced from caption/description
// fields as {{name}}.
type TextBlocks map[string]string

// Reportlet is one displayable unit (figure, table, or text block) within a
// report section. Captions and descriptions may reference text blocks; they
// are stored unresolved so re-serializing a document preserves the source.
type Reportlet struct {
	Selector Selector

	Title       string
	Subtitle    string
	SubSubtitle string
	Caption     string
	Description string

	// IFrame embeds the artifact as an interactive frame instead of an
	// inline image. Defaults to false.
	IFrame bool
}

// Section groups reportlets under a heading. Order is display order.
type Section struct {
	Name       string
	Reportlets []Reportlet
}

// Document is a full report layout: a package identifier, reusable text
// blocks, and ordered sections. Documents are authored once, loaded
// read-only, and never mutated.
type Document struct {
	Package  string
	Text     TextBlocks
	Sections []Section
}

// LayoutRef is a lightweight reference to a layout file on disk.
type LayoutRef struct {
	Name string
	Path string
}

// Reportlets returns every reportlet in document order, paired with its
// section name. Useful for validation passes.
func (d Document) Reportlets() []SectionReportlet {
	var out []SectionReportlet
	for _, s := range d.Sections {
		for i, r := range s.Reportlets {
			out = append(out, SectionReportlet{Section: s.Name, Index: i, Reportlet: r})
		}
	}
	return out
}

// SectionReportlet is a reportlet annotated with its position in the document.
type SectionReportlet struct {
	Section   string
	Index     int
	Reportlet Reportlet
}
