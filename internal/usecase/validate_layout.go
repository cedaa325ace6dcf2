package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/ports"
)

// AmbiguityIssue reports a selector that matched several artifacts.
type AmbiguityIssue struct {
	Section    string
	Selector   string
	Candidates []string
}

// ValidationReport summarizes a layout validation pass. Missing artifacts are
// informational (the pipeline may simply not have run yet); ambiguities are
// invariant violations.
type ValidationReport struct {
	LayoutPath string
	Package    string
	Sections   int
	Reportlets int

	Missing   []string
	Ambiguous []AmbiguityIssue
}

type ValidateLayout struct {
	layouts   ports.LayoutLoader
	artifacts ports.ArtifactScanner
	resolver  *domain.TextResolver
}

type ValidateOption func(*ValidateLayout)

func WithTextResolver(tr *domain.TextResolver) ValidateOption {
	return func(uc *ValidateLayout) {
		if tr != nil {
			uc.resolver = tr
		}
	}
}

func NewValidateLayout(ll ports.LayoutLoader, as ports.ArtifactScanner, opts ...ValidateOption) *ValidateLayout {
	uc := &ValidateLayout{
		layouts:   ll,
		artifacts: as,
		resolver:  domain.NewTextResolver(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute validates a layout without rendering. It resolves every text
// reference (dangling references fail) and, when artifactsDir is non-empty,
// checks that each selector resolves to at most one artifact.
func (uc *ValidateLayout) Execute(ctx context.Context, layoutPath string, artifactsDir string) (ValidationReport, error) {
	doc, err := uc.layouts.LoadLayout(layoutPath)
	if err != nil {
		return ValidationReport{}, err
	}

	rep := ValidationReport{
		LayoutPath: layoutPath,
		Package:    doc.Package,
		Sections:   len(doc.Sections),
	}

	rt := uc.resolver.NewRuntime(doc)

	all := doc.Reportlets()
	rep.Reportlets = len(all)

	for _, sr := range all {
		if err := ctx.Err(); err != nil {
			return ValidationReport{}, err
		}

		if _, err := rt.ResolveReportlet(sr.Reportlet); err != nil {
			return ValidationReport{}, fmt.Errorf("section %q reportlet %d: %w", sr.Section, sr.Index, err)
		}
	}

	if artifactsDir == "" {
		return rep, nil
	}

	artifacts, err := uc.artifacts.Scan(artifactsDir)
	if err != nil {
		return ValidationReport{}, err
	}

	for _, sr := range all {
		res := domain.Resolve(sr.Reportlet.Selector, artifacts)
		switch res.Status {
		case domain.StatusMissing:
			rep.Missing = append(rep.Missing, domain.FormatSelector(sr.Reportlet.Selector))
		case domain.StatusAmbiguous:
			rep.Ambiguous = append(rep.Ambiguous, AmbiguityIssue{
				Section:    sr.Section,
				Selector:   domain.FormatSelector(sr.Reportlet.Selector),
				Candidates: res.Candidates,
			})
		}
	}

	if len(rep.Ambiguous) > 0 {
		return rep, &domain.OpError{
			Op:   "validate.selectors",
			Kind: domain.KindAmbiguousSelector,
			Path: layoutPath,
			Err:  fmt.Errorf("%d selector(s) match more than one artifact: %w", len(rep.Ambiguous), domain.ErrAmbiguousSelector),
		}
	}

	return rep, nil
}
