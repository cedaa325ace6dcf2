package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/infra/fsartifacts"
	"github.com/aalvaropc/neuroreport/internal/infra/htmlreport"
	"github.com/aalvaropc/neuroreport/internal/infra/manifeststore"
	"github.com/aalvaropc/neuroreport/internal/infra/workspacefinder"
	"github.com/aalvaropc/neuroreport/internal/infra/yamllayout"
	"github.com/aalvaropc/neuroreport/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	layouts   ports.LayoutLoader
	artifacts ports.ArtifactScanner
	renderer  ports.Renderer
	store     ports.ManifestStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	layoutLoader := yamllayout.NewLoader(
		yamllayout.WithLayoutsDir(cfg.Paths.LayoutsDir),
	)

	store := manifeststore.NewJSONStore(root, cfg, manifeststore.WithIndex(true))

	return &workspaceCtx{
		root:      root,
		cfg:       cfg,
		layouts:   layoutLoader,
		artifacts: fsartifacts.NewScanner(),
		renderer:  htmlreport.New(),
		store:     store,
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `neuroreport init`): %w", wd, err)
	}
	return root, nil
}

func resolveLayoutPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		in = ws.cfg.Defaults.Layout
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	layoutsDir := filepath.Join(ws.root, ws.cfg.Paths.LayoutsDir)

	// If user provided "pairwise.yaml", treat it as file under layouts dir.
	if hasYAMLExt(in) {
		p := filepath.Join(layoutsDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// If user provided "pairwise", try pairwise.yaml / pairwise.yml in layouts dir.
	p1 := filepath.Join(layoutsDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(layoutsDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	return "", fmt.Errorf("layout %q not found in %q", in, layoutsDir)
}

func resolveArtifactsDir(ws *workspaceCtx, arg string) string {
	in := strings.TrimSpace(arg)
	if in == "" {
		return filepath.Join(ws.root, ws.cfg.Paths.ArtifactsDir)
	}
	if !filepath.IsAbs(in) {
		return filepath.Join(ws.root, in)
	}
	return filepath.Clean(in)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
