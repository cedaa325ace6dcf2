package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/neuroreport/internal/app/template"
	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/infra/fsartifacts"
	"github.com/aalvaropc/neuroreport/internal/infra/htmlreport"
	"github.com/aalvaropc/neuroreport/internal/infra/manifeststore"
	"github.com/aalvaropc/neuroreport/internal/infra/workspacefinder"
	"github.com/aalvaropc/neuroreport/internal/infra/yamllayout"
	"github.com/aalvaropc/neuroreport/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, true)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadLayouts(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return layoutsLoadedMsg{root: root, err: err}
		}

		loader := yamllayout.NewLoader(
			yamllayout.WithLayoutsDir(cfg.Paths.LayoutsDir),
		)

		refs, err := loader.ListLayouts(root)
		return layoutsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdPreviewLayout(path string) tea.Cmd {
	return func() tea.Msg {
		p := filepath.Clean(path)

		loader := yamllayout.NewLoader()
		doc, err := loader.LoadLayout(p)
		if err != nil {
			return layoutPreviewMsg{path: p, preview: "", err: err}
		}

		var b strings.Builder
		b.WriteString("Package: ")
		b.WriteString(doc.Package)
		b.WriteString("\n\n")

		if len(doc.Text) > 0 {
			b.WriteString("Text blocks:\n")
			names := make([]string, 0, len(doc.Text))
			for k := range doc.Text {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				b.WriteString("  - ")
				b.WriteString(k)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		for _, sec := range doc.Sections {
			b.WriteString("Section: ")
			b.WriteString(sec.Name)
			b.WriteString("\n")
			for _, r := range sec.Reportlets {
				b.WriteString("  - ")
				b.WriteString(domain.FormatSelector(r.Selector))
				b.WriteString("\n")
				if r.Caption != "" {
					caption := r.Caption
					if resolved, rerr := template.RenderString(r.Caption, doc.Text); rerr == nil {
						caption = resolved
					}
					b.WriteString("    ")
					b.WriteString(clampString(caption, 80))
					b.WriteString("\n")
				}
			}
		}

		return layoutPreviewMsg{path: p, preview: b.String(), err: nil}
	}
}

func cmdLoadReports(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return reportsLoadedMsg{root: root, err: err}
		}

		dir := filepath.Join(root, cfg.Paths.ReportsDir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return reportsLoadedMsg{root: root, ids: nil, err: nil}
			}
			return reportsLoadedMsg{root: root, err: err}
		}

		var ids []string
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
		sort.Sort(sort.Reverse(sort.StringSlice(ids)))

		return reportsLoadedMsg{root: root, ids: ids, err: nil}
	}
}

func defaultLayoutPath(root string) (string, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return "", err
	}

	layoutsDir := filepath.Join(root, cfg.Paths.LayoutsDir)
	name := strings.TrimSpace(cfg.Defaults.Layout)
	if name == "" {
		name = "default"
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(layoutsDir, name+ext)
		if _, statErr := os.Stat(p); statErr == nil {
			return p, nil
		}
	}

	return "", &domain.OpError{
		Op:   "tui.defaultlayout",
		Kind: domain.KindNotFound,
		Path: filepath.Join(layoutsDir, name+".yaml"),
		Err:  fmt.Errorf("default layout %q not found", name),
	}
}

func listenRender(ch <-chan renderDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return renderDoneMsg{err: errors.New("render channel closed")}
		}
		return msg
	}
}

func startRenderAsync(
	workspaceRoot, layoutPath string,
	log *slog.Logger,
	debug bool,
) (chan renderDoneMsg, tea.Cmd) {
	ch := make(chan renderDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("render.start",
			"workspace", workspaceRoot,
			"layout_path", layoutPath,
			"debug", debug,
		)

		cfg, err := workspacefinder.LoadConfig(workspaceRoot)
		if err != nil {
			log.Error("render.load_config.failed", "err", err)
			ch <- renderDoneMsg{err: err}
			return
		}

		loader := yamllayout.NewLoader(
			yamllayout.WithLayoutsDir(cfg.Paths.LayoutsDir),
		)
		scanner := fsartifacts.NewScanner()
		renderer := htmlreport.New()
		store := manifeststore.NewJSONStore(workspaceRoot, cfg, manifeststore.WithIndex(true))

		uc := usecase.NewRenderReport(loader, scanner, renderer, store)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		artifactsDir := filepath.Join(workspaceRoot, cfg.Paths.ArtifactsDir)
		outDir := filepath.Join(workspaceRoot, cfg.Paths.ReportsDir)

		manifest, id, execErr := uc.Execute(ctx, layoutPath, artifactsDir, outDir)

		if execErr != nil {
			log.Error("render.failed", "err", execErr, "saved_id", id)
		} else {
			log.Info("render.ok", "saved_id", id, "output", manifest.OutputPath)
		}

		for _, rr := range manifest.Reportlets {
			switch rr.Status {
			case domain.StatusMissing:
				log.Warn("reportlet.missing",
					"section", rr.Section,
					"selector", rr.Selector,
				)
			case domain.StatusAmbiguous:
				log.Warn("reportlet.ambiguous",
					"section", rr.Section,
					"selector", rr.Selector,
					"candidates", strings.Join(rr.Candidates, ", "),
				)
			default:
				if debug {
					log.Debug("reportlet.resolved",
						"section", rr.Section,
						"selector", rr.Selector,
						"artifact", rr.Artifact,
					)
				}
			}
		}

		ch <- renderDoneMsg{manifest: manifest, id: id, err: execErr}
	}()

	return ch, listenRender(ch)
}
