package ports

import "github.com/aalvaropc/neuroreport/internal/domain"

// ManifestStore persists render manifests for reproducibility.
type ManifestStore interface {
	SaveManifest(m domain.RenderManifest) (id string, err error)
	LoadManifest(idOrPath string) (domain.RenderManifest, error)
}
