package tui

import "github.com/aalvaropc/neuroreport/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type layoutsLoadedMsg struct {
	root string
	refs []domain.LayoutRef
	err  error
}

type layoutPreviewMsg struct {
	path    string
	preview string
	err     error
}

type reportsLoadedMsg struct {
	root string
	ids  []string
	err  error
}

type renderDoneMsg struct {
	manifest domain.RenderManifest
	id       string
	err      error
}
