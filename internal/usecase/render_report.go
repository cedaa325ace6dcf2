package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/ports"
)

type RenderReport struct {
	layouts   ports.LayoutLoader
	artifacts ports.ArtifactScanner
	renderer  ports.Renderer
	store     ports.ManifestStore
	resolver  *domain.TextResolver
	now       func() time.Time
}

type RenderOption func(*RenderReport)

func WithRenderTextResolver(tr *domain.TextResolver) RenderOption {
	return func(uc *RenderReport) {
		if tr != nil {
			uc.resolver = tr
		}
	}
}

// WithRenderNow overrides the clock (useful for tests).
func WithRenderNow(now func() time.Time) RenderOption {
	return func(uc *RenderReport) { uc.now = now }
}

// NewRenderReport wires a render pipeline. store may be nil to skip manifest
// persistence.
func NewRenderReport(ll ports.LayoutLoader, as ports.ArtifactScanner, r ports.Renderer, store ports.ManifestStore, opts ...RenderOption) *RenderReport {
	uc := &RenderReport{
		layouts:   ll,
		artifacts: as,
		renderer:  r,
		store:     store,
		resolver:  domain.NewTextResolver(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute renders a layout against a directory of pipeline artifacts.
// Missing artifacts render as placeholders and are recorded in the manifest;
// an ambiguous selector aborts the render, since the report could silently
// embed the wrong map.
func (uc *RenderReport) Execute(ctx context.Context, layoutPath, artifactsDir, outDir string) (domain.RenderManifest, string, error) {
	doc, err := uc.layouts.LoadLayout(layoutPath)
	if err != nil {
		return domain.RenderManifest{}, "", err
	}

	artifacts, err := uc.artifacts.Scan(artifactsDir)
	if err != nil {
		return domain.RenderManifest{}, "", err
	}

	rt := uc.resolver.NewRuntime(doc)
	started := uc.now()

	manifest := domain.RenderManifest{
		LayoutName:   layoutName(layoutPath),
		LayoutPath:   layoutPath,
		Package:      doc.Package,
		ArtifactsDir: artifactsDir,
		StartedAt:    started,
	}

	resolved := domain.ResolvedReport{
		Package:     doc.Package,
		LayoutName:  manifest.LayoutName,
		GeneratedAt: started,
	}

	for _, sec := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return domain.RenderManifest{}, "", err
		}

		rsec := domain.ResolvedSection{Name: sec.Name}
		for i, r := range sec.Reportlets {
			rr, err := rt.ResolveReportlet(r)
			if err != nil {
				return domain.RenderManifest{}, "", fmt.Errorf("section %q reportlet %d: %w", sec.Name, i, err)
			}

			res := domain.Resolve(rr.Selector, artifacts)
			result := domain.ReportletResult{
				Section:  sec.Name,
				Selector: domain.FormatSelector(rr.Selector),
				Status:   res.Status,
			}

			switch res.Status {
			case domain.StatusAmbiguous:
				return domain.RenderManifest{}, "", &domain.OpError{
					Op:   "render.resolve",
					Kind: domain.KindAmbiguousSelector,
					Path: layoutPath,
					Err: fmt.Errorf("selector %s matches %d artifacts (%s): %w",
						result.Selector, len(res.Candidates), strings.Join(res.Candidates, ", "), domain.ErrAmbiguousSelector),
				}
			case domain.StatusResolved:
				result.Artifact = res.Artifact.Name
				result.ArtifactPath = res.Artifact.Path
			}

			manifest.Reportlets = append(manifest.Reportlets, result)
			rsec.Reportlets = append(rsec.Reportlets, domain.ResolvedReportlet{
				Reportlet: rr,
				Status:    res.Status,
				Artifact:  res.Artifact,
			})
		}
		resolved.Sections = append(resolved.Sections, rsec)
	}

	outPath, err := uc.renderer.Render(ctx, resolved, outDir)
	if err != nil {
		return domain.RenderManifest{}, "", err
	}

	manifest.OutputPath = outPath
	manifest.FinishedAt = uc.now()

	var id string
	if uc.store != nil {
		id, err = uc.store.SaveManifest(manifest)
		if err != nil {
			return manifest, "", err
		}
		manifest.ID = id
	}

	return manifest, id, nil
}

func layoutName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
