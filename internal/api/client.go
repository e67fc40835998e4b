// Package api is the HTTP client for the Yusra REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tgienger/yusra/internal/models"
)

// DefaultBaseURL is the hosted backend
const DefaultBaseURL = "https://yusra-server.onrender.com/api"

// Credentials supplies the bearer token attached to every request.
// An empty token means the request goes out unauthenticated.
type Credentials interface {
	AccessToken() string
}

// Client talks to the backend. It holds no board state.
type Client struct {
	baseURL string
	creds   Credentials
	client  *http.Client
	log     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the logger used for per-request debug lines
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client rooted at baseURL
func New(baseURL string, creds Credentials, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root every path is resolved against
func (c *Client) BaseURL() string { return c.baseURL }

// Auth

func (c *Client) Login(ctx context.Context, email, password string) (*models.Tokens, error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	var out models.Tokens
	if err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.Tokens, error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	var out models.Tokens
	req := RegisterRequest{Name: strings.TrimSpace(name), Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workspaces

func (c *Client) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	var out []models.Workspace
	if err := c.do(ctx, http.MethodGet, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateWorkspace(ctx context.Context, name string) (*models.Workspace, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	var out models.Workspace
	if err := c.do(ctx, http.MethodPost, "/workspaces", WorkspaceNameRequest{Name: strings.TrimSpace(name)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetWorkspace(ctx context.Context, id string) (*models.Workspace, error) {
	if err := required("workspace id", id); err != nil {
		return nil, err
	}
	var out models.Workspace
	if err := c.do(ctx, http.MethodGet, "/workspaces/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameWorkspace(ctx context.Context, id, name string) error {
	if err := required("workspace id", id); err != nil {
		return err
	}
	if err := required("name", name); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/workspaces/"+url.PathEscape(id), WorkspaceNameRequest{Name: strings.TrimSpace(name)}, nil)
}

func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	if err := required("workspace id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/workspaces/"+url.PathEscape(id), nil, nil)
}

// Boards

func (c *Client) ListBoards(ctx context.Context, workspaceID string) ([]models.Board, error) {
	if err := required("workspace id", workspaceID); err != nil {
		return nil, err
	}
	var out []models.Board
	if err := c.do(ctx, http.MethodGet, "/boards/workspace/"+url.PathEscape(workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBoard(ctx context.Context, workspaceID, title string) (*models.Board, error) {
	if err := required("workspace id", workspaceID); err != nil {
		return nil, err
	}
	if err := required("title", title); err != nil {
		return nil, err
	}
	var out models.Board
	req := CreateBoardRequest{Title: strings.TrimSpace(title), WorkspaceID: workspaceID}
	if err := c.do(ctx, http.MethodPost, "/boards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBoard fetches the board together with its columns and nested cards
func (c *Client) GetBoard(ctx context.Context, id string) (*models.BoardDetail, error) {
	if err := required("board id", id); err != nil {
		return nil, err
	}
	var out models.BoardDetail
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Columns {
		if out.Columns[i].Cards == nil {
			out.Columns[i].Cards = []models.Card{}
		}
	}
	return &out, nil
}

func (c *Client) RenameBoard(ctx context.Context, id, title string) error {
	if err := required("board id", id); err != nil {
		return err
	}
	if err := required("title", title); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/boards/"+url.PathEscape(id), TitleRequest{Title: strings.TrimSpace(title)}, nil)
}

func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	if err := required("board id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/boards/"+url.PathEscape(id), nil, nil)
}

// Columns

func (c *Client) CreateColumn(ctx context.Context, boardID, title string) (*models.Column, error) {
	if err := required("board id", boardID); err != nil {
		return nil, err
	}
	if err := required("title", title); err != nil {
		return nil, err
	}
	var out models.Column
	req := CreateColumnRequest{Title: strings.TrimSpace(title), BoardID: boardID}
	if err := c.do(ctx, http.MethodPost, "/columns", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameColumn(ctx context.Context, id, title string) error {
	if err := required("column id", id); err != nil {
		return err
	}
	if err := required("title", title); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/columns/"+url.PathEscape(id), TitleRequest{Title: strings.TrimSpace(title)}, nil)
}

func (c *Client) DeleteColumn(ctx context.Context, id string) error {
	if err := required("column id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/columns/"+url.PathEscape(id), nil, nil)
}

// ReorderColumns persists the full left-to-right column order of a board
func (c *Client) ReorderColumns(ctx context.Context, boardID string, orderedColumnIDs []string) error {
	if err := required("board id", boardID); err != nil {
		return err
	}
	if len(orderedColumnIDs) == 0 {
		return &ValidationError{Field: "orderedColumnIds", Reason: "must not be empty"}
	}
	req := ReorderColumnsRequest{BoardID: boardID, OrderedColumnIDs: orderedColumnIDs}
	return c.do(ctx, http.MethodPost, "/columns/reorder", req, nil)
}

// Cards

func (c *Client) CreateCard(ctx context.Context, boardID, columnID, title string) (*models.Card, error) {
	if err := required("board id", boardID); err != nil {
		return nil, err
	}
	if err := required("column id", columnID); err != nil {
		return nil, err
	}
	if err := required("title", title); err != nil {
		return nil, err
	}
	var out models.Card
	req := CreateCardRequest{Title: strings.TrimSpace(title), ColumnID: columnID, BoardID: boardID}
	if err := c.do(ctx, http.MethodPost, "/cards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RenameCard(ctx context.Context, id, title string) error {
	if err := required("card id", id); err != nil {
		return err
	}
	if err := required("title", title); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/cards/"+url.PathEscape(id), TitleRequest{Title: strings.TrimSpace(title)}, nil)
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	if err := required("card id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(id), nil, nil)
}

// MoveCard relocates a card to toPosition within toColumnID
func (c *Client) MoveCard(ctx context.Context, req MoveCardRequest) error {
	if err := required("card id", req.CardID); err != nil {
		return err
	}
	if err := required("column id", req.ToColumnID); err != nil {
		return err
	}
	if req.ToPosition < 0 {
		return &ValidationError{Field: "toPosition", Reason: "must not be negative"}
	}
	return c.do(ctx, http.MethodPost, "/cards/move", req, nil)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// do sends one request and decodes a JSON response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.creds != nil {
		if token := c.creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "err", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read response body: %w", err)}
	}
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{Status: resp.StatusCode}
		var er ErrorResponse
		if json.Unmarshal(respBody, &er) == nil {
			he.Message = er.Message
		}
		return he
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
