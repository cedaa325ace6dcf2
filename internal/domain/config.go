package domain

// Config represents the minimal neuroreport configuration loaded from
// neuroreport.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
}

type DefaultsConfig struct {
	Layout string
}

type PathsConfig struct {
	LayoutsDir   string
	ArtifactsDir string
	ReportsDir   string
}

// DefaultConfig provides sane defaults if neuroreport.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Layout: "default",
		},
		Paths: PathsConfig{
			LayoutsDir:   "layouts",
			ArtifactsDir: "artifacts",
			ReportsDir:   "reports",
		},
	}
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}
