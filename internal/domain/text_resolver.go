package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TextResolver resolves {{name}} references in caption/description fields
// against a document's text blocks. It supports built-ins: {{$package}} and
// {{$date}}.
//
// This lives in domain because it does not depend on YAML/FS/HTML. Only stdlib.
type TextResolver struct {
	now func() time.Time
}

// TextResolverOption configures TextResolver.
type TextResolverOption func(*TextResolver)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) TextResolverOption {
	return func(r *TextResolver) { r.now = now }
}

func NewTextResolver(opts ...TextResolverOption) *TextResolver {
	r := &TextResolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuntimeResolver fixes the built-ins for a single rendering session so
// repeated {{$date}} references across reportlets stay consistent.
type RuntimeResolver struct {
	blocks   TextBlocks
	builtins TextBlocks
}

func (r *TextResolver) NewRuntime(doc Document) *RuntimeResolver {
	blocks := TextBlocks{}
	for k, v := range doc.Text {
		blocks[k] = v
	}

	return &RuntimeResolver{
		blocks: blocks,
		builtins: TextBlocks{
			"$package": doc.Package,
			"$date":    r.now().UTC().Format("2006-01-02"),
		},
	}
}

// ResolveString resolves {{name}} references in a string.
func (rr *RuntimeResolver) ResolveString(s string) (string, error) {
	// Fast path: no reference start.
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == '{' && s[i+1] == '{' {
			start := i + 2

			end := strings.Index(s[start:], "}}")
			if end < 0 {
				return "", &OpError{
					Op:   "text.resolve",
					Kind: KindInvalidLayout,
					Err:  errors.New("unclosed text reference"),
				}
			}
			end = start + end

			name := strings.TrimSpace(s[start:end])
			if name == "" {
				return "", &OpError{
					Op:   "text.resolve",
					Kind: KindInvalidLayout,
					Err:  errors.New("empty text reference"),
				}
			}

			val, ok := rr.builtins[name]
			if !ok {
				val, ok = rr.blocks[name]
			}
			if !ok {
				return "", &OpError{
					Op:   "text.resolve",
					Kind: KindMissingText,
					Err:  fmt.Errorf("undefined text block: %s", name),
				}
			}

			b.WriteString(val)
			i = end + 2
			continue
		}

		b.WriteByte(s[i])
		i++
	}

	return b.String(), nil
}

// ResolveReportlet resolves the caption and description of a reportlet.
// It returns a copy (does not mutate input).
func (rr *RuntimeResolver) ResolveReportlet(r Reportlet) (Reportlet, error) {
	out := r

	caption, err := rr.ResolveString(r.Caption)
	if err != nil {
		return Reportlet{}, wrapField(err, "reportlet.caption")
	}
	out.Caption = caption

	desc, err := rr.ResolveString(r.Description)
	if err != nil {
		return Reportlet{}, wrapField(err, "reportlet.description")
	}
	out.Description = desc

	return out, nil
}

func wrapField(err error, field string) error {
	// Keep Kind information, but add context about which field was being resolved.
	return &OpError{
		Op:   "text.resolve",
		Kind: kindFrom(err),
		Err:  fmt.Errorf("%s: %w", field, err),
	}
}

func kindFrom(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindExecution
}
