package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "layout not found",
			err: &domain.OpError{
				Op:   "yamllayout.load",
				Kind: domain.KindNotFound,
				Path: "layouts/missing.yaml",
				Err:  domain.ErrNotFound,
			},
			want: "Layout not found",
		},
		{
			name: "workspace not found",
			err: &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			},
			want: "Workspace not found",
		},
		{
			name: "missing text block with name",
			err: &domain.OpError{
				Op:   "template.render",
				Kind: domain.KindMissingText,
				Err:  fmt.Errorf("undefined text block %q", "fwe_note"),
			},
			want: "Missing text block fwe_note",
		},
		{
			name: "ambiguous selector",
			err: &domain.OpError{
				Op:   "usecase.render",
				Kind: domain.KindAmbiguousSelector,
				Err:  domain.ErrAmbiguousSelector,
			},
			want: "Selector matched several artifacts (see logs)",
		},
		{
			name: "invalid yaml with line",
			err: &domain.OpError{
				Op:   "yamllayout.parse",
				Kind: domain.KindInvalidLayout,
				Path: "layouts/broken.yaml",
				Err:  errors.New("yaml: line 7: did not find expected key"),
			},
			want: "Invalid YAML at broken.yaml line 7",
		},
		{
			name: "invalid layout without yaml marker",
			err: &domain.OpError{
				Op:   "yamllayout.validate",
				Kind: domain.KindInvalidLayout,
				Path: "layouts/empty.yaml",
				Err:  errors.New("document has no sections"),
			},
			want: "Invalid layout",
		},
		{
			name: "plain yaml error",
			err:  errors.New("yaml: cannot unmarshal !!str into int"),
			want: "Invalid YAML",
		},
		{
			name: "anything else",
			err:  errors.New("disk on fire"),
			want: "Unexpected error (see logs)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := userMessage(tc.err)
			if got != tc.want {
				t.Fatalf("userMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("short", 10); got != "short" {
		t.Fatalf("clampString short = %q", got)
	}
	if got := clampString("ünïcode string", 4); got != "ünïc…" {
		t.Fatalf("clampString unicode = %q", got)
	}
	if got := clampString("anything", 0); got != "" {
		t.Fatalf("clampString zero = %q", got)
	}
}
