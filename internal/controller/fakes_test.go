package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/models"
)

var errServer = &api.HTTPError{Status: 500, Message: "boom"}

// fakeAPI implements every controller API interface. Calls are recorded as
// strings; the *Func fields override the default behaviour.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	detail     *models.BoardDetail
	workspaces []models.Workspace
	boards     []models.Board

	GetBoardFunc       func(id string) (*models.BoardDetail, error)
	ReorderColumnsFunc func(boardID string, ids []string) error
	MoveCardFunc       func(req api.MoveCardRequest) error
	failAll            error
}

func (f *fakeAPI) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) GetBoard(_ context.Context, id string) (*models.BoardDetail, error) {
	f.record("GetBoard %s", id)
	if f.GetBoardFunc != nil {
		return f.GetBoardFunc(id)
	}
	if f.detail == nil {
		return nil, &api.HTTPError{Status: 404, Message: "Board not found"}
	}
	d := *f.detail
	d.Columns = models.CloneColumns(f.detail.Columns)
	return &d, nil
}

func (f *fakeAPI) RenameBoard(_ context.Context, id, title string) error {
	f.record("RenameBoard %s %s", id, title)
	return f.failAll
}

func (f *fakeAPI) DeleteBoard(_ context.Context, id string) error {
	f.record("DeleteBoard %s", id)
	return f.failAll
}

func (f *fakeAPI) CreateColumn(_ context.Context, boardID, title string) (*models.Column, error) {
	f.record("CreateColumn %s %s", boardID, title)
	if f.failAll != nil {
		return nil, f.failAll
	}
	return &models.Column{ID: "new", Title: title, BoardID: boardID}, nil
}

func (f *fakeAPI) RenameColumn(_ context.Context, id, title string) error {
	f.record("RenameColumn %s %s", id, title)
	return f.failAll
}

func (f *fakeAPI) DeleteColumn(_ context.Context, id string) error {
	f.record("DeleteColumn %s", id)
	return f.failAll
}

func (f *fakeAPI) ReorderColumns(_ context.Context, boardID string, ids []string) error {
	f.record("ReorderColumns %s %v", boardID, ids)
	if f.ReorderColumnsFunc != nil {
		return f.ReorderColumnsFunc(boardID, ids)
	}
	return f.failAll
}

func (f *fakeAPI) CreateCard(_ context.Context, boardID, columnID, title string) (*models.Card, error) {
	f.record("CreateCard %s %s %s", boardID, columnID, title)
	if f.failAll != nil {
		return nil, f.failAll
	}
	return &models.Card{ID: "new", Title: title, ColumnID: columnID}, nil
}

func (f *fakeAPI) RenameCard(_ context.Context, id, title string) error {
	f.record("RenameCard %s %s", id, title)
	return f.failAll
}

func (f *fakeAPI) DeleteCard(_ context.Context, id string) error {
	f.record("DeleteCard %s", id)
	return f.failAll
}

func (f *fakeAPI) MoveCard(_ context.Context, req api.MoveCardRequest) error {
	f.record("MoveCard %s %s %d", req.CardID, req.ToColumnID, req.ToPosition)
	if f.MoveCardFunc != nil {
		return f.MoveCardFunc(req)
	}
	return f.failAll
}

func (f *fakeAPI) ListWorkspaces(context.Context) ([]models.Workspace, error) {
	f.record("ListWorkspaces")
	return append([]models.Workspace(nil), f.workspaces...), nil
}

func (f *fakeAPI) CreateWorkspace(_ context.Context, name string) (*models.Workspace, error) {
	f.record("CreateWorkspace %s", name)
	if f.failAll != nil {
		return nil, f.failAll
	}
	ws := models.Workspace{ID: fmt.Sprintf("ws%d", len(f.workspaces)+1), Name: name}
	f.workspaces = append(f.workspaces, ws)
	return &ws, nil
}

func (f *fakeAPI) GetWorkspace(_ context.Context, id string) (*models.Workspace, error) {
	f.record("GetWorkspace %s", id)
	for _, ws := range f.workspaces {
		if ws.ID == id {
			return &ws, nil
		}
	}
	return nil, &api.HTTPError{Status: 404, Message: "Workspace not found"}
}

func (f *fakeAPI) RenameWorkspace(_ context.Context, id, name string) error {
	f.record("RenameWorkspace %s %s", id, name)
	return f.failAll
}

func (f *fakeAPI) DeleteWorkspace(_ context.Context, id string) error {
	f.record("DeleteWorkspace %s", id)
	return f.failAll
}

func (f *fakeAPI) ListBoards(_ context.Context, workspaceID string) ([]models.Board, error) {
	f.record("ListBoards %s", workspaceID)
	return append([]models.Board(nil), f.boards...), nil
}

func (f *fakeAPI) CreateBoard(_ context.Context, workspaceID, title string) (*models.Board, error) {
	f.record("CreateBoard %s %s", workspaceID, title)
	if f.failAll != nil {
		return nil, f.failAll
	}
	b := models.Board{ID: fmt.Sprintf("b%d", len(f.boards)+1), Title: title, WorkspaceID: workspaceID}
	f.boards = append(f.boards, b)
	return &b, nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.Tokens, error) {
	f.record("Login %s", email)
	if password != "secret" {
		return nil, &api.HTTPError{Status: 401, Message: "Invalid email or password"}
	}
	return &models.Tokens{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (*models.Tokens, error) {
	f.record("Register %s", email)
	if f.failAll != nil {
		return nil, f.failAll
	}
	return &models.Tokens{AccessToken: "access", RefreshToken: "refresh"}, nil
}

// run executes cmd, feeds its message to update, and keeps going with any
// follow-up command. It returns every message produced along the way.
func run(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	for cmd != nil {
		msg := cmd()
		msgs = append(msgs, msg)
		cmd = update(msg)
	}
	return msgs
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isHTTPError(err error) bool {
	var he *api.HTTPError
	return errors.As(err, &he)
}
