package workspacefinder

import (
	"os"
	"path/filepath"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads neuroreport.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "neuroreport.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidLayout,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Neuroreport.Defaults.Layout != "" {
		cfg.Defaults.Layout = y.Neuroreport.Defaults.Layout
	}
	if y.Neuroreport.Paths.LayoutsDir != "" {
		cfg.Paths.LayoutsDir = y.Neuroreport.Paths.LayoutsDir
	}
	if y.Neuroreport.Paths.ArtifactsDir != "" {
		cfg.Paths.ArtifactsDir = y.Neuroreport.Paths.ArtifactsDir
	}
	if y.Neuroreport.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Neuroreport.Paths.ReportsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Neuroreport struct {
		Defaults struct {
			Layout string `yaml:"layout"`
		} `yaml:"defaults"`

		Paths struct {
			LayoutsDir   string `yaml:"layouts_dir"`
			ArtifactsDir string `yaml:"artifacts_dir"`
			ReportsDir   string `yaml:"reports_dir"`
		} `yaml:"paths"`
	} `yaml:"neuroreport"`
}
