package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "yamllayout") {
				return "Layout not found"
			}
			if strings.Contains(oe.Op, "manifeststore") {
				return "Report not found"
			}
			if strings.Contains(oe.Op, "workspacefinder.findroot") {
				return "Workspace not found"
			}
			if strings.Contains(oe.Op, "defaultlayout") {
				return "Default layout not found"
			}
			return "Not found"

		case domain.KindMissingText:
			v := extractTextBlockName(err.Error())
			if v == "" {
				return "Missing text block"
			}
			return "Missing text block " + v

		case domain.KindAmbiguousSelector:
			return "Selector matched several artifacts (see logs)"

		case domain.KindInvalidLayout:
			base := "layout"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid layout"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}
	if strings.Contains(strings.ToLower(err.Error()), "undefined text block") {
		v := extractTextBlockName(err.Error())
		if v != "" {
			return "Missing text block " + v
		}
		return "Missing text block"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func extractTextBlockName(s string) string {
	ls := strings.ToLower(s)

	i := strings.LastIndex(ls, "undefined text block ")
	if i < 0 {
		return ""
	}

	part := strings.TrimSpace(s[i+len("undefined text block "):])
	part = strings.Trim(part, " .,:;\"'")
	fields := strings.Fields(part)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], " .,:;\"'")
}
