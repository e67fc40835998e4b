package controller

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/models"
	"github.com/tgienger/yusra/internal/reorder"
)

// BoardAPI is the slice of the API client the board screen needs
type BoardAPI interface {
	GetBoard(ctx context.Context, id string) (*models.BoardDetail, error)
	RenameBoard(ctx context.Context, id, title string) error
	DeleteBoard(ctx context.Context, id string) error
	CreateColumn(ctx context.Context, boardID, title string) (*models.Column, error)
	RenameColumn(ctx context.Context, id, title string) error
	DeleteColumn(ctx context.Context, id string) error
	ReorderColumns(ctx context.Context, boardID string, orderedColumnIDs []string) error
	CreateCard(ctx context.Context, boardID, columnID, title string) (*models.Card, error)
	RenameCard(ctx context.Context, id, title string) error
	DeleteCard(ctx context.Context, id string) error
	MoveCard(ctx context.Context, req api.MoveCardRequest) error
}

// CardDrop is the result of dropping a dragged card
type CardDrop struct {
	CardID       string
	FromColumnID string
	ToColumnID   string
	FromIndex    int
	ToIndex      int
}

// Board holds one board's columns and cards.
//
// Reorders and moves are optimistic: the new order is visible immediately
// and a failed persist reloads the board from the server. Everything else
// waits for the server before touching local state.
type Board struct {
	ctx context.Context
	api BoardAPI
	log *slog.Logger

	id      string
	board   *models.Board
	columns []models.Column
	loading bool
	loadErr error
	pending int
}

type boardLoadedMsg struct {
	boardID string
	detail  *models.BoardDetail
	err     error
}

// optimisticResultMsg reports a reorder or move persist
type optimisticResultMsg struct {
	boardID string
	op      string
	err     error
}

type boardCreatedMsg struct {
	boardID string
	op      string
	err     error
}

type columnRenamedMsg struct {
	id, title string
	err       error
}

type cardRenamedMsg struct {
	id, title string
	err       error
}

type boardRenamedMsg struct {
	boardID, title string
	err            error
}

type columnDeletedMsg struct {
	id  string
	err error
}

type cardDeletedMsg struct {
	id  string
	err error
}

type boardDeletedMsg struct {
	boardID     string
	workspaceID string
	err         error
}

// NewBoard creates a controller for boardID. Call Load before anything else.
func NewBoard(ctx context.Context, client BoardAPI, logger *slog.Logger, boardID string) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		ctx:     ctx,
		api:     client,
		log:     logger.With("board", boardID),
		id:      boardID,
		loading: true,
	}
}

// ID returns the board id this controller was created for
func (c *Board) ID() string { return c.id }

// Board returns the loaded board, or nil before a successful load
func (c *Board) Board() *models.Board { return c.board }

// Columns returns the displayed columns. Callers must not modify them.
func (c *Board) Columns() []models.Column { return c.columns }

// Loading reports whether a load is in flight
func (c *Board) Loading() bool { return c.loading }

// LoadErr returns the error of the last failed load
func (c *Board) LoadErr() error { return c.loadErr }

// Pending returns the number of reorder/move persists still in flight
func (c *Board) Pending() int { return c.pending }

// Column returns the column with id and its index
func (c *Board) Column(id string) (models.Column, int, bool) {
	idx := reorder.Index(c.columns, func(col models.Column) bool { return col.ID == id })
	if idx < 0 {
		return models.Column{}, -1, false
	}
	return c.columns[idx], idx, true
}

// Load fetches the board and replaces all local state with the result
func (c *Board) Load() tea.Cmd {
	c.loading = true
	ctx, client, id := c.ctx, c.api, c.id
	return func() tea.Msg {
		detail, err := client.GetBoard(ctx, id)
		return boardLoadedMsg{boardID: id, detail: detail, err: err}
	}
}

// ReorderColumns moves the column at from to index to, then persists the
// resulting order.
func (c *Board) ReorderColumns(from, to int) tea.Cmd {
	if from == to {
		return nil
	}
	next, err := reorder.Within(models.CloneColumns(c.columns), from, to)
	if err != nil {
		c.log.Warn("column reorder rejected", "from", from, "to", to, "err", err)
		return nil
	}
	models.Renumber(next)
	c.columns = next

	ids := make([]string, len(next))
	for i, col := range next {
		ids[i] = col.ID
	}
	c.pending++
	ctx, client, boardID := c.ctx, c.api, c.id
	return func() tea.Msg {
		err := client.ReorderColumns(ctx, boardID, ids)
		return optimisticResultMsg{boardID: boardID, op: "reorder columns", err: err}
	}
}

// MoveCard applies a card drop locally and persists it
func (c *Board) MoveCard(d CardDrop) tea.Cmd {
	if d.FromColumnID == d.ToColumnID && d.FromIndex == d.ToIndex {
		return nil
	}

	_, srcIdx, ok := c.Column(d.FromColumnID)
	if !ok {
		c.log.Warn("card drop from unknown column", "column", d.FromColumnID)
		return c.Load()
	}
	_, dstIdx, ok := c.Column(d.ToColumnID)
	if !ok {
		c.log.Warn("card drop into unknown column", "column", d.ToColumnID)
		return c.Load()
	}
	src := c.columns[srcIdx].Cards
	if d.FromIndex < 0 || d.FromIndex >= len(src) || src[d.FromIndex].ID != d.CardID {
		c.log.Warn("stale card drop", "card", d.CardID, "index", d.FromIndex)
		return c.Load()
	}

	next := models.CloneColumns(c.columns)
	if srcIdx == dstIdx {
		cards, err := reorder.Within(next[srcIdx].Cards, d.FromIndex, d.ToIndex)
		if err != nil {
			c.log.Warn("card reorder rejected", "card", d.CardID, "err", err)
			return nil
		}
		next[srcIdx].Cards = cards
	} else {
		newSrc, newDst, err := reorder.Between(next[srcIdx].Cards, next[dstIdx].Cards, d.FromIndex, d.ToIndex)
		if err != nil {
			c.log.Warn("card move rejected", "card", d.CardID, "err", err)
			return nil
		}
		next[srcIdx].Cards = newSrc
		next[dstIdx].Cards = newDst
	}
	models.Renumber(next)
	c.columns = next

	req := api.MoveCardRequest{CardID: d.CardID, ToColumnID: d.ToColumnID, ToPosition: d.ToIndex}
	c.pending++
	ctx, client, boardID := c.ctx, c.api, c.id
	return func() tea.Msg {
		err := client.MoveCard(ctx, req)
		return optimisticResultMsg{boardID: boardID, op: "move card", err: err}
	}
}

// CreateColumn adds a column; a blank title sends nothing
func (c *Board) CreateColumn(title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client, boardID := c.ctx, c.api, c.id
	return func() tea.Msg {
		_, err := client.CreateColumn(ctx, boardID, title)
		return boardCreatedMsg{boardID: boardID, op: "create column", err: err}
	}
}

// CreateCard appends a card to columnID; a blank title sends nothing
func (c *Board) CreateCard(columnID, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client, boardID := c.ctx, c.api, c.id
	return func() tea.Msg {
		_, err := client.CreateCard(ctx, boardID, columnID, title)
		return boardCreatedMsg{boardID: boardID, op: "create card", err: err}
	}
}

// RenameColumn persists a new title and patches it in place on success
func (c *Board) RenameColumn(id, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return columnRenamedMsg{id: id, title: title, err: client.RenameColumn(ctx, id, title)}
	}
}

// RenameCard persists a new title and patches it in place on success
func (c *Board) RenameCard(id, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return cardRenamedMsg{id: id, title: title, err: client.RenameCard(ctx, id, title)}
	}
}

// RenameBoard persists a new board title
func (c *Board) RenameBoard(title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	ctx, client, boardID := c.ctx, c.api, c.id
	return func() tea.Msg {
		return boardRenamedMsg{boardID: boardID, title: title, err: client.RenameBoard(ctx, boardID, title)}
	}
}

// DeleteColumn removes a column and its cards once the server confirms.
// The caller is responsible for asking the user first.
func (c *Board) DeleteColumn(id string) tea.Cmd {
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return columnDeletedMsg{id: id, err: client.DeleteColumn(ctx, id)}
	}
}

// DeleteCard removes a card once the server confirms
func (c *Board) DeleteCard(id string) tea.Cmd {
	ctx, client := c.ctx, c.api
	return func() tea.Msg {
		return cardDeletedMsg{id: id, err: client.DeleteCard(ctx, id)}
	}
}

// DeleteBoard deletes the board and then navigates to its workspace,
// whether or not the request succeeded.
func (c *Board) DeleteBoard() tea.Cmd {
	workspaceID := ""
	if c.board != nil {
		workspaceID = c.board.WorkspaceID
	}
	ctx, client, boardID := c.ctx, c.api, c.id
	return func() tea.Msg {
		err := client.DeleteBoard(ctx, boardID)
		return boardDeletedMsg{boardID: boardID, workspaceID: workspaceID, err: err}
	}
}

// Update applies the result of a command issued by this controller.
// Messages for other boards are ignored.
func (c *Board) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.boardID != c.id {
			return nil
		}
		c.loading = false
		if msg.err != nil {
			c.log.Error("board fetch failed", "err", msg.err)
			c.loadErr = msg.err
			// a failed reload keeps what is already on screen
			if c.board == nil {
				c.columns = nil
			}
			return nil
		}
		c.loadErr = nil
		board := msg.detail.Board
		c.board = &board
		c.columns = msg.detail.Columns
		return nil

	case optimisticResultMsg:
		if msg.boardID != c.id {
			return nil
		}
		c.pending = max(c.pending-1, 0)
		if msg.err != nil {
			c.log.Error("persist failed, reloading", "op", msg.op, "err", msg.err)
			return c.Load()
		}
		return nil

	case boardCreatedMsg:
		if msg.boardID != c.id {
			return nil
		}
		if msg.err != nil {
			c.log.Error("create failed", "op", msg.op, "err", msg.err)
			return nil
		}
		return c.Load()

	case columnRenamedMsg:
		if msg.err != nil {
			c.log.Error("rename column failed", "column", msg.id, "err", msg.err)
			return nil
		}
		if _, idx, ok := c.Column(msg.id); ok {
			next := models.CloneColumns(c.columns)
			next[idx].Title = msg.title
			c.columns = next
		}
		return nil

	case cardRenamedMsg:
		if msg.err != nil {
			c.log.Error("rename card failed", "card", msg.id, "err", msg.err)
			return nil
		}
		next := models.CloneColumns(c.columns)
		for i := range next {
			for j := range next[i].Cards {
				if next[i].Cards[j].ID == msg.id {
					next[i].Cards[j].Title = msg.title
				}
			}
		}
		c.columns = next
		return nil

	case boardRenamedMsg:
		if msg.boardID != c.id {
			return nil
		}
		if msg.err != nil {
			c.log.Error("rename board failed", "err", msg.err)
			return nil
		}
		if c.board != nil {
			board := *c.board
			board.Title = msg.title
			c.board = &board
		}
		return nil

	case columnDeletedMsg:
		if msg.err != nil {
			c.log.Error("delete column failed", "column", msg.id, "err", msg.err)
			return nil
		}
		next := make([]models.Column, 0, len(c.columns))
		for _, col := range models.CloneColumns(c.columns) {
			if col.ID != msg.id {
				next = append(next, col)
			}
		}
		models.Renumber(next)
		c.columns = next
		return nil

	case cardDeletedMsg:
		if msg.err != nil {
			c.log.Error("delete card failed", "card", msg.id, "err", msg.err)
			return nil
		}
		next := models.CloneColumns(c.columns)
		for i := range next {
			cards := next[i].Cards[:0:0]
			for _, card := range next[i].Cards {
				if card.ID != msg.id {
					cards = append(cards, card)
				}
			}
			next[i].Cards = cards
		}
		models.Renumber(next)
		c.columns = next
		return nil

	case boardDeletedMsg:
		if msg.boardID != c.id {
			return nil
		}
		if msg.err != nil {
			c.log.Error("delete board failed", "err", msg.err)
		}
		workspaceID := msg.workspaceID
		return func() tea.Msg { return NavigateToWorkspace{WorkspaceID: workspaceID} }
	}
	return nil
}
