package ports

import "github.com/aalvaropc/neuroreport/internal/domain"

// LayoutLoader loads report layouts from a source (e.g., filesystem).
type LayoutLoader interface {
	LoadLayout(path string) (domain.Document, error)
	ListLayouts(root string) ([]domain.LayoutRef, error)
}
