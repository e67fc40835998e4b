package controller

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/models"
)

// WorkspaceAPI is the slice of the API client the workspace list needs
type WorkspaceAPI interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
	CreateWorkspace(ctx context.Context, name string) (*models.Workspace, error)
	RenameWorkspace(ctx context.Context, id, name string) error
	DeleteWorkspace(ctx context.Context, id string) error
}

// Workspaces holds the current user's workspace list
type Workspaces struct {
	ctx context.Context
	api WorkspaceAPI
	log *slog.Logger

	items   []models.Workspace
	loaded  bool
	loadErr error
}

type workspacesLoadedMsg struct {
	items []models.Workspace
	err   error
}

type workspaceCreatedMsg struct {
	err error
}

type workspaceRenamedMsg struct {
	id, name string
	err      error
}

type workspaceDeletedMsg struct {
	id  string
	err error
}

func NewWorkspaces(ctx context.Context, client WorkspaceAPI, logger *slog.Logger) *Workspaces {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspaces{ctx: ctx, api: client, log: logger}
}

func (c *Workspaces) Items() []models.Workspace { return c.items }
func (c *Workspaces) Loaded() bool               { return c.loaded }
func (c *Workspaces) LoadErr() error             { return c.loadErr }

// Empty reports whether a completed load returned no workspaces
func (c *Workspaces) Empty() bool { return c.loaded && len(c.items) == 0 }

func (c *Workspaces) Load() tea.Cmd {
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		items, err := client.ListWorkspaces(ctx)
		return workspacesLoadedMsg{items: items, err: err}
	}
}

// Create adds a workspace and reloads the list; a blank name sends nothing
func (c *Workspaces) Create(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		_, err := client.CreateWorkspace(ctx, name)
		return workspaceCreatedMsg{err: err}
	}
}

func (c *Workspaces) Rename(id, name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return workspaceRenamedMsg{id: id, name: name, err: client.RenameWorkspace(ctx, id, name)}
	}
}

// Delete removes a workspace and, server side, everything in it
func (c *Workspaces) Delete(id string) tea.Cmd {
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return workspaceDeletedMsg{id: id, err: client.DeleteWorkspace(ctx, id)}
	}
}

func (c *Workspaces) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case workspacesLoadedMsg:
		c.loaded = true
		if msg.err != nil {
			c.log.Error("workspace fetch failed", "err", msg.err)
			c.loadErr = msg.err
			return nil
		}
		c.loadErr = nil
		c.items = msg.items

	case workspaceCreatedMsg:
		if msg.err != nil {
			c.log.Error("create workspace failed", "err", msg.err)
			return nil
		}
		return c.Load()

	case workspaceRenamedMsg:
		if msg.err != nil {
			c.log.Error("rename workspace failed", "workspace", msg.id, "err", msg.err)
			return nil
		}
		next := append([]models.Workspace(nil), c.items...)
		for i := range next {
			if next[i].ID == msg.id {
				next[i].Name = msg.name
			}
		}
		c.items = next

	case workspaceDeletedMsg:
		if msg.err != nil {
			c.log.Error("delete workspace failed", "workspace", msg.id, "err", msg.err)
			return nil
		}
		next := make([]models.Workspace, 0, len(c.items))
		for _, ws := range c.items {
			if ws.ID != msg.id {
				next = append(next, ws)
			}
		}
		c.items = next
	}
	return nil
}
