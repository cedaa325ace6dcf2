package template

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

// RenderString replaces {{name}} references with text-block values. It is the
// lightweight sibling of domain.TextResolver for callers that only have a raw
// block map and no document (previews, tooling).
func RenderString(input string, blocks map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", &domain.OpError{
				Op:   "template.render",
				Kind: domain.KindInvalidLayout,
				Err:  fmt.Errorf("unclosed text reference"),
			}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", &domain.OpError{
				Op:   "template.render",
				Kind: domain.KindInvalidLayout,
				Err:  fmt.Errorf("empty text reference"),
			}
		}

		value, ok := blocks[key]
		if !ok {
			return "", &domain.OpError{
				Op:   "template.render",
				Kind: domain.KindMissingText,
				Err:  fmt.Errorf("undefined text block %q", key),
			}
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}
