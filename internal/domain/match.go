package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ResolveStatus is the outcome of matching a selector against an artifact set.
type ResolveStatus string

const (
	StatusResolved  ResolveStatus = "resolved"
	StatusMissing   ResolveStatus = "missing"
	StatusAmbiguous ResolveStatus = "ambiguous"
)

// Resolution is the result of resolving one selector.
type Resolution struct {
	Status   ResolveStatus
	Artifact Artifact // valid only when Status == StatusResolved

	// Candidates lists the matching artifact names when ambiguous.
	Candidates []string
}

// Resolve matches a selector against the artifact set. A well-formed layout
// resolves every selector to exactly one artifact; zero matches is reported
// as missing and more than one as ambiguous.
func Resolve(sel Selector, artifacts []Artifact) Resolution {
	var matched []Artifact
	for _, a := range artifacts {
		if sel.Matches(a.Entities) {
			matched = append(matched, a)
		}
	}

	switch len(matched) {
	case 0:
		return Resolution{Status: StatusMissing}
	case 1:
		return Resolution{Status: StatusResolved, Artifact: matched[0]}
	default:
		names := make([]string, 0, len(matched))
		for _, a := range matched {
			names = append(names, a.Name)
		}
		sort.Strings(names)
		return Resolution{Status: StatusAmbiguous, Candidates: names}
	}
}

// FormatSelector renders a selector as a stable "k-v_k-v" string for messages
// and manifests.
func FormatSelector(sel Selector) string {
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s-%s", k, sel[k]))
	}
	return strings.Join(parts, "_")
}
