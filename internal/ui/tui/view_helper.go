package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderSummary(m domain.RenderManifest, id string) string {
	resolved := 0
	for _, r := range m.Reportlets {
		if r.Status == domain.StatusResolved {
			resolved++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rendered %s: %d/%d reportlets resolved", m.LayoutName, resolved, len(m.Reportlets))

	if missing := m.Missing(); len(missing) > 0 {
		fmt.Fprintf(&b, ", %d missing", len(missing))
	}
	if id != "" {
		b.WriteString(" (saved as ")
		b.WriteString(id)
		b.WriteString(")")
	}
	return b.String()
}
