package ports

import "github.com/aalvaropc/neuroreport/internal/domain"

// ArtifactScanner enumerates pipeline artifacts addressable by selectors.
type ArtifactScanner interface {
	Scan(dir string) ([]domain.Artifact, error)
}
