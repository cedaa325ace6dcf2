package domain

import (
	"path/filepath"
	"strings"
)

// ArtifactKind classifies how an artifact is embedded in a report.
type ArtifactKind string

const (
	KindFigure      ArtifactKind = "figure"
	KindTable       ArtifactKind = "table"
	KindText        ArtifactKind = "text"
	KindInteractive ArtifactKind = "interactive"
)

// Artifact is one file produced by the meta-analysis pipeline. Its filename
// encodes entities as underscore-joined key-value pairs, e.g.
// "value-z_tail-positive_diag-focuscounter_tab-counts.tsv".
type Artifact struct {
	Name     string // filename without extension
	Path     string
	Kind     ArtifactKind
	Entities map[string]string
}

// ParseArtifactName parses a pipeline filename into an Artifact. The second
// return value is false when the name does not follow the key-value entity
// convention (such files are not addressable by selectors).
func ParseArtifactName(path string) (Artifact, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		return Artifact{}, false
	}

	entities := map[string]string{}
	for _, part := range strings.Split(name, "_") {
		k, v, ok := strings.Cut(part, "-")
		if !ok || k == "" || v == "" {
			return Artifact{}, false
		}
		// First occurrence wins; duplicate keys make a name unaddressable.
		if _, dup := entities[k]; dup {
			return Artifact{}, false
		}
		entities[k] = v
	}

	return Artifact{
		Name:     name,
		Path:     path,
		Kind:     kindForExt(ext),
		Entities: entities,
	}, true
}

func kindForExt(ext string) ArtifactKind {
	switch strings.ToLower(ext) {
	case ".png", ".svg", ".jpg", ".jpeg", ".gif":
		return KindFigure
	case ".html":
		return KindInteractive
	case ".tsv", ".csv":
		return KindTable
	default:
		return KindText
	}
}
