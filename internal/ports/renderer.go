package ports

import (
	"context"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

// Renderer turns a resolved report into an output file and returns its path.
type Renderer interface {
	Render(ctx context.Context, rep domain.ResolvedReport, outDir string) (string, error)
}
