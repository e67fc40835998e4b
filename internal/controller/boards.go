package controller

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/models"
)

// BoardListAPI is the slice of the API client the board list needs
type BoardListAPI interface {
	GetWorkspace(ctx context.Context, id string) (*models.Workspace, error)
	RenameWorkspace(ctx context.Context, id, name string) error
	DeleteWorkspace(ctx context.Context, id string) error
	ListBoards(ctx context.Context, workspaceID string) ([]models.Board, error)
	CreateBoard(ctx context.Context, workspaceID, title string) (*models.Board, error)
	RenameBoard(ctx context.Context, id, title string) error
}

// Boards holds one workspace and the boards inside it
type Boards struct {
	ctx context.Context
	api BoardListAPI
	log *slog.Logger

	workspaceID string
	workspace   *models.Workspace
	items       []models.Board
	loaded      bool
	loadErr     error
}

type boardsLoadedMsg struct {
	workspaceID string
	workspace   *models.Workspace
	items       []models.Board
	err         error
}

type boardAddedMsg struct {
	workspaceID string
	err         error
}

type boardTitleMsg struct {
	id, title string
	err       error
}

type workspaceTitleMsg struct {
	workspaceID, name string
	err               error
}

type workspaceRemovedMsg struct {
	workspaceID string
	err         error
}

func NewBoards(ctx context.Context, client BoardListAPI, logger *slog.Logger, workspaceID string) *Boards {
	if logger == nil {
		logger = slog.Default()
	}
	return &Boards{ctx: ctx, api: client, log: logger.With("workspace", workspaceID), workspaceID: workspaceID}
}

func (c *Boards) WorkspaceID() string { return c.workspaceID }

// Workspace returns the loaded workspace, or nil
func (c *Boards) Workspace() *models.Workspace { return c.workspace }
func (c *Boards) Items() []models.Board        { return c.items }
func (c *Boards) Loaded() bool                 { return c.loaded }
func (c *Boards) LoadErr() error               { return c.loadErr }
func (c *Boards) Empty() bool                  { return c.loaded && len(c.items) == 0 }

// Load fetches the workspace and its boards
func (c *Boards) Load() tea.Cmd {
	ctx, client, id := c.ctx, c.api, c.workspaceID
	return func() tea.Msg {
		ws, err := client.GetWorkspace(ctx, id)
		if err != nil {
			return boardsLoadedMsg{workspaceID: id, err: err}
		}
		items, err := client.ListBoards(ctx, id)
		return boardsLoadedMsg{workspaceID: id, workspace: ws, items: items, err: err}
	}
}

func (c *Boards) Create(title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client, id := c.ctx, c.api, c.workspaceID
	return func() tea.Msg {
		_, err := client.CreateBoard(ctx, id, title)
		return boardAddedMsg{workspaceID: id, err: err}
	}
}

func (c *Boards) Rename(id, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return boardTitleMsg{id: id, title: title, err: client.RenameBoard(ctx, id, title)}
	}
}

func (c *Boards) RenameWorkspace(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	ctx, client, id := c.ctx, c.api, c.workspaceID
	return func() tea.Msg {
		return workspaceTitleMsg{workspaceID: id, name: name, err: client.RenameWorkspace(ctx, id, name)}
	}
}

// DeleteWorkspace deletes the workspace and navigates back to the list on success
func (c *Boards) DeleteWorkspace() tea.Cmd {
	ctx, client, id := c.ctx, c.api, c.workspaceID
	return func() tea.Msg {
		return workspaceRemovedMsg{workspaceID: id, err: client.DeleteWorkspace(ctx, id)}
	}
}

func (c *Boards) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case boardsLoadedMsg:
		if msg.workspaceID != c.workspaceID {
			return nil
		}
		c.loaded = true
		if msg.err != nil {
			c.log.Error("board list fetch failed", "err", msg.err)
			c.loadErr = msg.err
			return nil
		}
		c.loadErr = nil
		c.workspace = msg.workspace
		c.items = msg.items

	case boardAddedMsg:
		if msg.workspaceID != c.workspaceID {
			return nil
		}
		if msg.err != nil {
			c.log.Error("create board failed", "err", msg.err)
			return nil
		}
		return c.Load()

	case boardTitleMsg:
		if msg.err != nil {
			c.log.Error("rename board failed", "board", msg.id, "err", msg.err)
			return nil
		}
		next := append([]models.Board(nil), c.items...)
		for i := range next {
			if next[i].ID == msg.id {
				next[i].Title = msg.title
			}
		}
		c.items = next

	case workspaceTitleMsg:
		if msg.workspaceID != c.workspaceID {
			return nil
		}
		if msg.err != nil {
			c.log.Error("rename workspace failed", "err", msg.err)
			return nil
		}
		if c.workspace != nil {
			ws := *c.workspace
			ws.Name = msg.name
			c.workspace = &ws
		}

	case workspaceRemovedMsg:
		if msg.workspaceID != c.workspaceID {
			return nil
		}
		if msg.err != nil {
			c.log.Error("delete workspace failed", "err", msg.err)
			return nil
		}
		return func() tea.Msg { return NavigateToWorkspaces{} }
	}
	return nil
}
