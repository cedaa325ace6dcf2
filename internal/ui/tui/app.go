package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenHome screen = iota
	screenLayouts
	screenPreview
	screenReports
	screenSettings
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type layoutItem struct {
	name string
	path string
}

func (l layoutItem) Title() string       { return l.name }
func (l layoutItem) Description() string { return l.path }
func (l layoutItem) FilterValue() string { return l.name }

type model struct {
	theme Theme
	deps  Deps

	scr        screen
	menu       list.Model
	layouts    list.Model
	activeName string

	preview     string
	previewPath string

	reportIDs []string

	running  bool
	renderCh chan renderDoneMsg
	lastID   string

	toast string

	workspaceFound bool
	workspaceRoot  string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{"Layouts", "Browse and preview report layouts"},
		menuItem{"Render", "Render the default layout into an HTML report"},
		menuItem{"Reports", "List saved render manifests"},
		menuItem{"Settings", "Workspace and defaults"},
		menuItem{"Quit", "Exit neuroreport"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "neuroreport"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ll := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	ll.Title = "Layouts"
	ll.SetShowStatusBar(false)
	ll.SetFilteringEnabled(true)
	ll.SetShowHelp(false)

	m := model{
		theme:   t,
		deps:    deps,
		scr:     screenHome,
		menu:    l,
		layouts: ll,
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-10)
		m.layouts.SetSize(w-4, h-10)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.err != nil && !msg.found {
			m.toast = "No workspace found"
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace initialized at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case layoutsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, layoutItem{name: r.Name, path: r.Path})
		}
		m.layouts.SetItems(items)
		return m, nil

	case layoutPreviewMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.scr = screenPreview
		m.preview = msg.preview
		m.previewPath = msg.path
		return m, nil

	case reportsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.reportIDs = msg.ids
		return m, nil

	case renderDoneMsg:
		m.running = false
		m.renderCh = nil
		m.lastID = msg.id
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = renderSummary(msg.manifest, msg.id)
		return m, nil
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.scr == screenLayouts {
		var cmd tea.Cmd
		m.layouts, cmd = m.layouts.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.scr == screenHome {
			return m, tea.Quit
		}
		m.scr = screenHome
		m.activeName = ""
		m.toast = ""
		return m, nil

	case "enter":
		switch m.scr {
		case screenHome:
			it, ok := m.menu.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			return m.openMenu(it.title)
		case screenLayouts:
			it, ok := m.layouts.SelectedItem().(layoutItem)
			if !ok {
				return m, nil
			}
			return m, cmdPreviewLayout(it.path)
		}

	case "r":
		if m.scr == screenLayouts && !m.running {
			it, ok := m.layouts.SelectedItem().(layoutItem)
			if !ok {
				return m, nil
			}
			return m.startRender(it.path)
		}
		if m.scr == screenPreview && !m.running {
			return m.startRender(m.previewPath)
		}

	case "i":
		if m.scr == screenSettings {
			root := m.workspaceRoot
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					m.toast = "Unexpected error (see logs)"
					return m, nil
				}
				root = wd
			}
			return m, cmdInitWorkspaceHere(m.deps, root)
		}

	case "esc", "b":
		switch m.scr {
		case screenPreview:
			m.scr = screenLayouts
			m.preview = ""
			m.previewPath = ""
			return m, nil
		case screenHome:
		default:
			m.scr = screenHome
			m.activeName = ""
			m.toast = ""
			return m, nil
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	if m.scr == screenLayouts {
		var cmd tea.Cmd
		m.layouts, cmd = m.layouts.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) openMenu(title string) (tea.Model, tea.Cmd) {
	if strings.EqualFold(title, "Quit") {
		return m, tea.Quit
	}
	if !m.workspaceFound && !strings.EqualFold(title, "Settings") {
		m.toast = "No workspace found. Create one in Settings."
		return m, nil
	}

	switch {
	case strings.EqualFold(title, "Layouts"):
		m.scr = screenLayouts
		m.activeName = title
		return m, cmdLoadLayouts(m.workspaceRoot)
	case strings.EqualFold(title, "Render"):
		return m.startDefaultRender()
	case strings.EqualFold(title, "Reports"):
		m.scr = screenReports
		m.activeName = title
		return m, cmdLoadReports(m.workspaceRoot)
	case strings.EqualFold(title, "Settings"):
		m.scr = screenSettings
		m.activeName = title
		return m, nil
	}
	return m, nil
}

func (m model) startRender(layoutPath string) (tea.Model, tea.Cmd) {
	if !m.workspaceFound {
		m.toast = "No workspace found. Create one in Settings."
		return m, nil
	}
	ch, cmd := startRenderAsync(m.workspaceRoot, layoutPath, m.deps.Logger, m.deps.Debug)
	m.running = true
	m.renderCh = ch
	m.toast = "Rendering…"
	return m, cmd
}

func (m model) startDefaultRender() (tea.Model, tea.Cmd) {
	path, err := defaultLayoutPath(m.workspaceRoot)
	if err != nil {
		m.toast = userMessage(err)
		return m, nil
	}
	return m.startRender(path)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("neuroreport") + "\n" +
		m.theme.Subtitle.Render("TUI-first report builder (Go) — layouts, artifacts, and HTML reports") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one in Settings → Init Workspace.",
		)
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Subtitle.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenLayouts:
		help := m.theme.Help.Render("enter preview • r render • esc/b back • q home")
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + m.theme.Card.Render(m.layouts.View()) + "\n" + help)

	case screenPreview:
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				m.theme.Title.Render(m.previewPath),
				m.preview,
				m.theme.Help.Render("r render • esc/b back • q home"),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + card)

	case screenReports:
		var b strings.Builder
		if len(m.reportIDs) == 0 {
			b.WriteString("No saved reports yet.")
		} else {
			for _, id := range m.reportIDs {
				b.WriteString("  - ")
				b.WriteString(id)
				b.WriteString("\n")
			}
		}
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				m.theme.Title.Render("Reports"),
				b.String(),
				m.theme.Help.Render("esc/b back • q home"),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + card)

	case screenSettings:
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				m.theme.Title.Render("Settings"),
				"Workspace layout lives in neuroreport.yaml at the root.",
				m.theme.Help.Render("i init workspace here • esc/b back • q home"),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
