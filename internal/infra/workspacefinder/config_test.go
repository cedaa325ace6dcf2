package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()

	// Partial config (no paths)
	content := []byte("neuroreport:\n  defaults:\n    layout: pairwise\n")
	if err := os.WriteFile(filepath.Join(root, "neuroreport.yaml"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Defaults.Layout != "pairwise" {
		t.Fatalf("expected layout=pairwise, got=%s", cfg.Defaults.Layout)
	}
	if cfg.Paths.LayoutsDir != "layouts" {
		t.Fatalf("expected default layouts dir, got=%s", cfg.Paths.LayoutsDir)
	}
	if cfg.Paths.ArtifactsDir != "artifacts" {
		t.Fatalf("expected default artifacts dir, got=%s", cfg.Paths.ArtifactsDir)
	}
	if cfg.Paths.ReportsDir != "reports" {
		t.Fatalf("expected default reports dir, got=%s", cfg.Paths.ReportsDir)
	}
}

func TestLoadConfig_MissingFileStillReturnsDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := LoadConfig(root)
	if err == nil {
		t.Fatalf("expected error for missing config")
	}
	// Defaults still usable by callers that tolerate a missing file.
	if cfg.Defaults.Layout != "default" {
		t.Fatalf("expected default layout, got=%s", cfg.Defaults.Layout)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	root := t.TempDir()

	content := []byte(`
neuroreport:
  paths:
    layouts_dir: report-layouts
    artifacts_dir: out
    reports_dir: html
`)
	if err := os.WriteFile(filepath.Join(root, "neuroreport.yaml"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Paths.LayoutsDir != "report-layouts" || cfg.Paths.ArtifactsDir != "out" || cfg.Paths.ReportsDir != "html" {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
}
