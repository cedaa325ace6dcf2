package domain

import "time"

// ReportletResult records the outcome of resolving a single reportlet.
type ReportletResult struct {
	Section  string        `json:"section"`
	Selector string        `json:"selector"`
	Status   ResolveStatus `json:"status"`

	// Artifact name and path, set when resolved.
	Artifact     string `json:"artifact,omitempty"`
	ArtifactPath string `json:"artifact_path,omitempty"`

	// Candidates lists matching artifact names when ambiguous.
	Candidates []string `json:"candidates,omitempty"`
}

// RenderManifest is the persisted record of one report render, kept for
// reproducibility alongside the HTML output.
type RenderManifest struct {
	ID string `json:"id"`

	LayoutName string `json:"layout"`
	LayoutPath string `json:"layout_path"`
	Package    string `json:"package"`

	ArtifactsDir string `json:"artifacts_dir"`
	OutputPath   string `json:"output_path"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Reportlets []ReportletResult `json:"reportlets"`
}

// Missing returns the results whose selectors matched no artifact.
func (m RenderManifest) Missing() []ReportletResult {
	var out []ReportletResult
	for _, r := range m.Reportlets {
		if r.Status == StatusMissing {
			out = append(out, r)
		}
	}
	return out
}

// Ambiguous returns the results whose selectors matched several artifacts.
func (m RenderManifest) Ambiguous() []ReportletResult {
	var out []ReportletResult
	for _, r := range m.Reportlets {
		if r.Status == StatusAmbiguous {
			out = append(out, r)
		}
	}
	return out
}

// ResolvedReportlet pairs a reportlet (captions resolved) with the artifact
// its selector matched. Artifact is zero-valued when Status != resolved.
type ResolvedReportlet struct {
	Reportlet Reportlet
	Status    ResolveStatus
	Artifact  Artifact
}

// ResolvedSection is a section whose reportlets have been resolved.
type ResolvedSection struct {
	Name       string
	Reportlets []ResolvedReportlet
}

// ResolvedReport is the fully resolved input handed to a renderer: display
// order preserved, text references substituted, artifacts matched.
type ResolvedReport struct {
	Package     string
	LayoutName  string
	GeneratedAt time.Time
	Sections    []ResolvedSection
}
