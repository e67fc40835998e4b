package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/controller"
	"github.com/tgienger/yusra/internal/models"
	"github.com/tgienger/yusra/internal/reorder"
	"github.com/tgienger/yusra/internal/ui/keys"
	"github.com/tgienger/yusra/internal/ui/styles"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeGrabCard
	boardModeGrabColumn
)

// grab tracks an item picked up with the keyboard. from* is where it was
// picked up, to* is where it would land if dropped now.
type grab struct {
	cardID  string
	fromCol int
	fromIdx int
	toCol   int
	toIdx   int
}

// BoardView shows one board's columns side by side
type BoardView struct {
	ctrl   *controller.Board
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	col    int // focused column
	card   int // focused card within col
	offset int // first visible column

	mode boardMode
	grab grab

	prompt  prompt
	confirm confirm

	showHelpPopup bool
}

func NewBoardView(ctrl *controller.Board) *BoardView {
	return &BoardView{
		ctrl:   ctrl,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		prompt: newPrompt(),
	}
}

func (v *BoardView) Init() tea.Cmd {
	return v.ctrl.Load()
}

// Cursor returns the focused column and card indices
func (v *BoardView) Cursor() (col, card int) { return v.col, v.card }

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirm.active {
			return v, v.confirm.update(msg)
		}
		if v.prompt.active {
			return v, v.prompt.update(msg, v.keys)
		}
		switch v.mode {
		case boardModeGrabCard:
			return v, v.updateGrabCard(msg)
		case boardModeGrabColumn:
			return v, v.updateGrabColumn(msg)
		}
		return v, v.updateNormal(msg)
	}

	cmd := v.ctrl.Update(msg)
	v.afterStateChange()
	return v, tea.Batch(cmd, v.prompt.forward(msg))
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	cols := v.ctrl.Columns()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v.backToWorkspace()

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return nil

	case key.Matches(msg, v.keys.Reload):
		return v.ctrl.Load()
	}

	if v.ctrl.Board() == nil {
		return nil
	}

	switch {
	case key.Matches(msg, v.keys.Left):
		if v.col > 0 {
			v.col--
			v.card = clamp(v.card, 0, max(0, len(cols[v.col].Cards)-1))
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Right):
		if v.col < len(cols)-1 {
			v.col++
			v.card = clamp(v.card, 0, max(0, len(cols[v.col].Cards)-1))
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Up):
		if v.card > 0 {
			v.card--
		}

	case key.Matches(msg, v.keys.Down):
		if len(cols) > 0 && v.card < len(cols[v.col].Cards)-1 {
			v.card++
		}

	case key.Matches(msg, v.keys.Grab):
		if card, ok := v.focusedCard(); ok {
			v.mode = boardModeGrabCard
			v.grab = grab{cardID: card.ID, fromCol: v.col, fromIdx: v.card, toCol: v.col, toIdx: v.card}
		}

	case key.Matches(msg, v.keys.GrabColumn):
		if len(cols) > 1 {
			v.mode = boardModeGrabColumn
			v.grab = grab{fromCol: v.col, toCol: v.col}
		}

	case key.Matches(msg, v.keys.New):
		if len(cols) == 0 {
			return v.prompt.open("New Column", "Column title", "", v.ctrl.CreateColumn)
		}
		columnID := cols[v.col].ID
		return v.prompt.open("New Card in "+cols[v.col].Title, "Card title", "", func(title string) tea.Cmd {
			return v.ctrl.CreateCard(columnID, title)
		})

	case key.Matches(msg, v.keys.NewColumn):
		return v.prompt.open("New Column", "Column title", "", v.ctrl.CreateColumn)

	case key.Matches(msg, v.keys.Edit):
		if card, ok := v.focusedCard(); ok {
			id := card.ID
			return v.prompt.open("Rename Card", "Card title", card.Title, func(title string) tea.Cmd {
				return v.ctrl.RenameCard(id, title)
			})
		}

	case key.Matches(msg, v.keys.EditColumn):
		if len(cols) > 0 {
			id := cols[v.col].ID
			return v.prompt.open("Rename Column", "Column title", cols[v.col].Title, func(title string) tea.Cmd {
				return v.ctrl.RenameColumn(id, title)
			})
		}

	case key.Matches(msg, v.keys.EditBoard):
		return v.prompt.open("Rename Board", "Board title", v.ctrl.Board().Title, v.ctrl.RenameBoard)

	case key.Matches(msg, v.keys.Delete):
		if card, ok := v.focusedCard(); ok {
			id := card.ID
			v.confirm.open("Delete Card?", fmt.Sprintf("%q will be deleted.", card.Title),
				func() tea.Cmd { return v.ctrl.DeleteCard(id) })
		}

	case key.Matches(msg, v.keys.DeleteColumn):
		if len(cols) > 0 {
			col := cols[v.col]
			id := col.ID
			v.confirm.open("Delete Column?",
				fmt.Sprintf("%q and its %d cards will be deleted.", col.Title, len(col.Cards)),
				func() tea.Cmd { return v.ctrl.DeleteColumn(id) })
		}

	case key.Matches(msg, v.keys.DeleteBoard):
		v.confirm.open("Delete Board?",
			fmt.Sprintf("%q and everything on it will be deleted.", v.ctrl.Board().Title),
			v.ctrl.DeleteBoard)
	}
	return nil
}

// updateGrabCard moves the held card's landing spot. Dropping produces the
// same drop a pointer drag would: source and destination column plus indices.
func (v *BoardView) updateGrabCard(msg tea.KeyMsg) tea.Cmd {
	cols := v.ctrl.Columns()
	g := &v.grab

	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = boardModeNormal
		v.col, v.card = g.fromCol, g.fromIdx
		v.ensureVisible()
		return nil

	case key.Matches(msg, v.keys.Left):
		if g.toCol > 0 {
			g.toCol--
			g.toIdx = clamp(g.toIdx, 0, v.maxDropIndex(g.toCol))
		}

	case key.Matches(msg, v.keys.Right):
		if g.toCol < len(cols)-1 {
			g.toCol++
			g.toIdx = clamp(g.toIdx, 0, v.maxDropIndex(g.toCol))
		}

	case key.Matches(msg, v.keys.Up):
		if g.toIdx > 0 {
			g.toIdx--
		}

	case key.Matches(msg, v.keys.Down):
		if g.toIdx < v.maxDropIndex(g.toCol) {
			g.toIdx++
		}

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Grab):
		v.mode = boardModeNormal
		if g.fromCol >= len(cols) || g.toCol >= len(cols) {
			return v.ctrl.Load()
		}
		drop := controller.CardDrop{
			CardID:       g.cardID,
			FromColumnID: cols[g.fromCol].ID,
			ToColumnID:   cols[g.toCol].ID,
			FromIndex:    g.fromIdx,
			ToIndex:      g.toIdx,
		}
		v.col, v.card = g.toCol, g.toIdx
		cmd := v.ctrl.MoveCard(drop)
		v.afterStateChange()
		return cmd
	}

	v.col, v.card = g.toCol, g.toIdx
	v.ensureVisible()
	return nil
}

func (v *BoardView) updateGrabColumn(msg tea.KeyMsg) tea.Cmd {
	cols := v.ctrl.Columns()
	g := &v.grab

	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = boardModeNormal
		v.col = g.fromCol
		v.ensureVisible()
		return nil

	case key.Matches(msg, v.keys.Left):
		if g.toCol > 0 {
			g.toCol--
		}

	case key.Matches(msg, v.keys.Right):
		if g.toCol < len(cols)-1 {
			g.toCol++
		}

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.GrabColumn), key.Matches(msg, v.keys.Grab):
		v.mode = boardModeNormal
		v.col, v.card = g.toCol, 0
		cmd := v.ctrl.ReorderColumns(g.fromCol, g.toCol)
		v.afterStateChange()
		return cmd
	}

	v.col = g.toCol
	v.ensureVisible()
	return nil
}

// maxDropIndex is the last valid landing index in column c for the held card
func (v *BoardView) maxDropIndex(c int) int {
	cols := v.ctrl.Columns()
	if c < 0 || c >= len(cols) {
		return 0
	}
	n := len(cols[c].Cards)
	if c == v.grab.fromCol {
		return max(0, n-1)
	}
	return n
}

func (v *BoardView) focusedCard() (models.Card, bool) {
	cols := v.ctrl.Columns()
	if v.col >= len(cols) || v.card >= len(cols[v.col].Cards) {
		return models.Card{}, false
	}
	return cols[v.col].Cards[v.card], true
}

func (v *BoardView) backToWorkspace() tea.Cmd {
	workspaceID := ""
	if b := v.ctrl.Board(); b != nil {
		workspaceID = b.WorkspaceID
	}
	if workspaceID == "" {
		return func() tea.Msg { return controller.NavigateToWorkspaces{} }
	}
	return func() tea.Msg { return controller.NavigateToWorkspace{WorkspaceID: workspaceID} }
}

// afterStateChange keeps the cursor inside the board after columns or cards
// were added, removed or replaced. A grab whose card vanished is dropped.
func (v *BoardView) afterStateChange() {
	cols := v.ctrl.Columns()
	if v.mode == boardModeGrabCard {
		g := v.grab
		if g.fromCol >= len(cols) || g.fromIdx >= len(cols[g.fromCol].Cards) ||
			cols[g.fromCol].Cards[g.fromIdx].ID != g.cardID || g.toCol >= len(cols) {
			v.mode = boardModeNormal
		}
	}
	if v.mode == boardModeGrabColumn && v.grab.fromCol >= len(cols) {
		v.mode = boardModeNormal
	}

	v.col = clamp(v.col, 0, max(0, len(cols)-1))
	if len(cols) == 0 {
		v.card = 0
	} else {
		v.card = clamp(v.card, 0, max(0, len(cols[v.col].Cards)-1))
	}
	v.ensureVisible()
}

func (v *BoardView) visibleColumns() int {
	return max(1, (v.width-2)/styles.ColumnWidth)
}

func (v *BoardView) ensureVisible() {
	n := v.visibleColumns()
	if v.col < v.offset {
		v.offset = v.col
	}
	if v.col >= v.offset+n {
		v.offset = v.col - n + 1
	}
	v.offset = clamp(v.offset, 0, max(0, len(v.ctrl.Columns())-n))
}

// preview returns the columns as they would look if the held item were
// dropped now
func (v *BoardView) preview() []models.Column {
	cols := v.ctrl.Columns()
	g := v.grab
	switch v.mode {
	case boardModeGrabCard:
		if g.fromCol == g.toCol && g.fromIdx == g.toIdx {
			return cols
		}
		next := models.CloneColumns(cols)
		if g.fromCol == g.toCol {
			cards, err := reorder.Within(next[g.fromCol].Cards, g.fromIdx, g.toIdx)
			if err != nil {
				return cols
			}
			next[g.fromCol].Cards = cards
		} else {
			src, dst, err := reorder.Between(next[g.fromCol].Cards, next[g.toCol].Cards, g.fromIdx, g.toIdx)
			if err != nil {
				return cols
			}
			next[g.fromCol].Cards, next[g.toCol].Cards = src, dst
		}
		return next

	case boardModeGrabColumn:
		next, err := reorder.Within(cols, g.fromCol, g.toCol)
		if err != nil {
			return cols
		}
		return next
	}
	return cols
}

func (v *BoardView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirm.active {
		return v.confirm.view(s, v.width, v.height)
	}
	if v.prompt.active {
		return v.prompt.view(s, v.width, v.height)
	}

	if v.ctrl.Board() == nil {
		if v.ctrl.Loading() {
			return s.TitleMuted.Render("Loading board...")
		}
		hint := "Press esc to go back"
		if err := v.ctrl.LoadErr(); err != nil && !api.IsNotFound(err) {
			hint = api.MessageOf(err, err.Error()) + " • ctrl+r retry • esc back"
		}
		return renderMessage(s, v.width, v.height, s.Error, "Board not found", hint)
	}

	var b strings.Builder
	b.WriteString(v.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(v.renderColumns())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *BoardView) renderTitle() string {
	s := v.styles
	title := s.Title.Render(v.ctrl.Board().Title)
	status := ""
	switch v.mode {
	case boardModeGrabCard:
		status = s.Syncing.Render("moving card")
	case boardModeGrabColumn:
		status = s.Syncing.Render("moving column")
	}
	if n := v.ctrl.Pending(); n > 0 {
		status = strings.TrimSpace(status + "  " + s.Syncing.Render("syncing…"))
	}
	if status == "" {
		return " " + title
	}
	return " " + title + "  " + status
}

func (v *BoardView) renderColumns() string {
	s := v.styles
	cols := v.preview()
	if len(cols) == 0 {
		return s.TitleMuted.Render("  No columns yet. Press 'N' to add the first one.")
	}

	// title, border, help and spacing take the rest
	cardRows := max(1, v.height-9)
	n := v.visibleColumns()
	end := min(v.offset+n, len(cols))

	var rendered []string
	if v.offset > 0 {
		rendered = append(rendered, s.TitleMuted.Render("◀"))
	}
	for i := v.offset; i < end; i++ {
		rendered = append(rendered, v.renderColumn(i, cols[i], cardRows))
	}
	if end < len(cols) {
		rendered = append(rendered, s.TitleMuted.Render("▶"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *BoardView) renderColumn(index int, col models.Column, cardRows int) string {
	s := v.styles
	focused := index == v.col
	textWidth := styles.ColumnWidth - 4

	header := s.ColumnTitle.Render(ansi.Truncate(col.Title, textWidth-5, "…")) +
		s.TitleMuted.Render(fmt.Sprintf(" (%d)", len(col.Cards)))

	lines := []string{header, ""}
	if len(col.Cards) == 0 {
		hint := "empty"
		if focused && v.mode == boardModeNormal {
			hint = "n to add a card"
		}
		lines = append(lines, s.TitleMuted.Render(hint))
	}

	// scroll so the focused card stays on screen
	start := 0
	if focused && v.card >= cardRows {
		start = v.card - cardRows + 1
	}
	end := min(start+cardRows, len(col.Cards))
	for i := start; i < end; i++ {
		card := col.Cards[i]
		title := ansi.Truncate(card.Title, textWidth, "…")
		switch {
		case v.mode == boardModeGrabCard && card.ID == v.grab.cardID:
			lines = append(lines, s.CardGhost.Render(ansi.Truncate(card.Title, textWidth-1, "…")))
		case focused && i == v.card && v.mode == boardModeNormal:
			lines = append(lines, s.CardSelected.Render(title))
		default:
			lines = append(lines, s.Card.Render(title))
		}
	}
	if end < len(col.Cards) {
		lines = append(lines, s.TitleMuted.Render(fmt.Sprintf("+%d more", len(col.Cards)-end)))
	}

	style := s.Column
	switch {
	case v.mode == boardModeGrabColumn && focused:
		style = s.ColumnGrabbed
	case focused:
		style = s.ColumnFocused
	}
	return style.Height(cardRows + 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *BoardView) renderHelp() string {
	s := v.styles
	switch v.mode {
	case boardModeGrabCard:
		return s.Help.Render(s.HelpKey.Render("h/j/k/l") + " move • " +
			s.HelpKey.Render("space/↵") + " drop • " + s.HelpKey.Render("esc") + " cancel")
	case boardModeGrabColumn:
		return s.Help.Render(s.HelpKey.Render("h/l") + " move • " +
			s.HelpKey.Render("g/↵") + " drop • " + s.HelpKey.Render("esc") + " cancel")
	}
	return renderHelpBar(s, v.width, []helpEntry{
		{"space", "grab"}, {"g", "grab col"}, {"n", "new"}, {"N", "new col"},
		{"e", "rename"}, {"d", "del"}, {"?", "more"}, {"esc", "back"},
	})
}

func (v *BoardView) renderHelpPopup() string {
	return renderHelpPopup(v.styles, v.width, v.height, []helpEntry{
		{"h/j/k/l", "move cursor"},
		{"space", "grab card, then move and drop"},
		{"g", "grab column, then move and drop"},
		{"n", "new card"},
		{"N", "new column"},
		{"e", "rename card"},
		{"E", "rename column"},
		{"r", "rename board"},
		{"d", "delete card"},
		{"D", "delete column"},
		{"X", "delete board"},
		{"ctrl+r", "reload"},
		{"esc", "back to boards"},
		{"q", "quit"},
	})
}
