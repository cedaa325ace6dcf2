package ports

import "github.com/aalvaropc/neuroreport/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
