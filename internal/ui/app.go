package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/controller"
	"github.com/tgienger/yusra/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewAuth View = iota
	ViewWorkspaces
	ViewBoards
	ViewBoard
)

// LastWorkspaceKey is the setting holding the workspace to reopen on start
const LastWorkspaceKey = "last_workspace_id"

// Backend is everything the screens need from the API client
type Backend interface {
	controller.AuthAPI
	controller.WorkspaceAPI
	controller.BoardListAPI
	controller.BoardAPI
}

// Settings persists small bits of UI state between runs
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Session reports whether a credential is stored and lets the user log out
type Session interface {
	controller.CredentialStore
	LoggedIn() bool
}

type App struct {
	ctx      context.Context
	backend  Backend
	session  Session
	settings Settings
	log      *slog.Logger

	header      *views.Header
	auth        *controller.Auth
	currentView View
	screen      tea.Model
	width       int
	height      int
}

// Creates a new application
func NewApp(ctx context.Context, backend Backend, session Session, settings Settings, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		ctx:      ctx,
		backend:  backend,
		session:  session,
		settings: settings,
		log:      logger,
		header:   views.NewHeader(),
		auth:     controller.NewAuth(ctx, backend, session, logger),
	}
}

// CurrentView returns the screen being shown
func (a *App) CurrentView() View { return a.currentView }

func (a *App) Init() tea.Cmd {
	if !a.session.LoggedIn() {
		return tea.Batch(a.header.Init(), a.showAuth())
	}

	// Reopen the last workspace, like a browser restoring its last page
	lastWorkspaceID, err := a.settings.GetSetting(LastWorkspaceKey)
	if err != nil {
		a.log.Warn("read last workspace failed", "err", err)
	}
	if lastWorkspaceID != "" {
		return tea.Batch(a.header.Init(), a.openWorkspace(lastWorkspaceID))
	}
	return tea.Batch(a.header.Init(), a.showWorkspaces())
}

func (a *App) show(view View, screen tea.Model) tea.Cmd {
	a.currentView = view
	a.screen = screen
	if a.width > 0 {
		a.screen.Update(a.screenSize())
	}
	return a.screen.Init()
}

func (a *App) screenSize() tea.WindowSizeMsg {
	if a.currentView == ViewAuth {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
	return tea.WindowSizeMsg{Width: a.width, Height: max(0, a.height-views.HeaderHeight)}
}

func (a *App) showAuth() tea.Cmd {
	return a.show(ViewAuth, views.NewAuthView(a.auth))
}

func (a *App) showWorkspaces() tea.Cmd {
	a.remember("")
	ctrl := controller.NewWorkspaces(a.ctx, a.backend, a.log)
	return a.show(ViewWorkspaces, views.NewWorkspaceListView(ctrl, a.auth))
}

func (a *App) openWorkspace(id string) tea.Cmd {
	a.remember(id)
	ctrl := controller.NewBoards(a.ctx, a.backend, a.log, id)
	return a.show(ViewBoards, views.NewBoardListView(ctrl))
}

func (a *App) openBoard(id string) tea.Cmd {
	ctrl := controller.NewBoard(a.ctx, a.backend, a.log, id)
	return a.show(ViewBoard, views.NewBoardView(ctrl))
}

func (a *App) remember(workspaceID string) {
	if err := a.settings.SetSetting(LastWorkspaceKey, workspaceID); err != nil {
		a.log.Warn("save last workspace failed", "err", err)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := a.header.Update(msg); cmd != nil {
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.screen != nil {
			a.screen.Update(a.screenSize())
		}
		return a, nil

	case controller.LoggedIn:
		return a, a.showWorkspaces()

	case controller.LoggedOut:
		a.remember("")
		return a, a.showAuth()

	case controller.NavigateToWorkspaces:
		return a, a.showWorkspaces()

	case controller.NavigateToWorkspace:
		return a, a.openWorkspace(msg.WorkspaceID)

	case views.OpenBoard:
		return a, a.openBoard(msg.BoardID)
	}

	if a.screen == nil {
		return a, nil
	}
	_, cmd := a.screen.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.screen == nil {
		return ""
	}
	// login and register are shown without the header
	if a.currentView == ViewAuth {
		return a.screen.View()
	}
	return a.header.View(a.width) + "\n" + a.screen.View()
}
