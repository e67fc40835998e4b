package views

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/controller"
	"github.com/tgienger/yusra/internal/models"
	"github.com/tgienger/yusra/internal/ui/keys"
	"github.com/tgienger/yusra/internal/ui/styles"
)

type boardItem struct {
	board models.Board
}

func (i boardItem) Title() string       { return i.board.Title }
func (i boardItem) Description() string { return "" }
func (i boardItem) FilterValue() string { return i.board.Title }

// BoardListView shows the boards of one workspace
type BoardListView struct {
	ctrl     *controller.Boards
	list     list.Model
	delegate *nameDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	prompt  prompt
	confirm confirm
	shown   []models.Board

	showHelpPopup bool
}

func NewBoardListView(ctrl *controller.Boards) *BoardListView {
	s := styles.NewStyles()
	delegate := &nameDelegate{styles: s, width: 80}

	return &BoardListView{
		ctrl:     ctrl,
		list:     newNameList("Boards", delegate, s),
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		prompt:   newPrompt(),
	}
}

func (v *BoardListView) Init() tea.Cmd {
	return v.ctrl.Load()
}

func (v *BoardListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-4)
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
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			if v.list.FilterState() == list.FilterApplied {
				break
			}
			return v, func() tea.Msg { return controller.NavigateToWorkspaces{} }
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Reload):
			return v, v.ctrl.Load()
		case key.Matches(msg, v.keys.New):
			return v, v.prompt.open("New Board", "Board title", "", v.ctrl.Create)
		case key.Matches(msg, v.keys.Enter):
			if b, ok := v.selected(); ok {
				return v, func() tea.Msg { return OpenBoard{BoardID: b.ID} }
			}
			return v, nil
		case key.Matches(msg, v.keys.Edit):
			if b, ok := v.selected(); ok {
				id := b.ID
				return v, v.prompt.open("Rename Board", "Board title", b.Title, func(title string) tea.Cmd {
					return v.ctrl.Rename(id, title)
				})
			}
			return v, nil
		case key.Matches(msg, v.keys.EditWorkspace):
			if ws := v.ctrl.Workspace(); ws != nil {
				return v, v.prompt.open("Rename Workspace", "Workspace name", ws.Name, v.ctrl.RenameWorkspace)
			}
			return v, nil
		case key.Matches(msg, v.keys.DeleteWorkspace):
			if ws := v.ctrl.Workspace(); ws != nil {
				v.confirm.open("Delete Workspace?",
					fmt.Sprintf("%q and all of its boards will be deleted.", ws.Name),
					v.ctrl.DeleteWorkspace)
			}
			return v, nil
		}

	default:
		cmd := v.ctrl.Update(msg)
		v.syncItems()
		return v, tea.Batch(cmd, v.prompt.forward(msg), v.forwardList(msg))
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *BoardListView) selected() (models.Board, bool) {
	item, ok := v.list.SelectedItem().(boardItem)
	return item.board, ok
}

func (v *BoardListView) forwardList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *BoardListView) syncItems() {
	if ws := v.ctrl.Workspace(); ws != nil {
		v.list.Title = ws.Name
	}
	boards := v.ctrl.Items()
	if slices.Equal(boards, v.shown) {
		return
	}
	v.shown = boards
	items := make([]list.Item, len(boards))
	for i, b := range boards {
		items[i] = boardItem{board: b}
	}
	v.list.SetItems(items)
}

func (v *BoardListView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height, []helpEntry{
			{"↵", "open board"},
			{"n", "new board"},
			{"e", "rename board"},
			{"R", "rename workspace"},
			{"D", "delete workspace"},
			{"/", "filter"},
			{"ctrl+r", "reload"},
			{"esc", "back to workspaces"},
			{"q", "quit"},
		})
	}
	if v.confirm.active {
		return v.confirm.view(v.styles, v.width, v.height)
	}
	if v.prompt.active {
		return v.prompt.view(v.styles, v.width, v.height)
	}

	if !v.ctrl.Loaded() {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if err := v.ctrl.LoadErr(); err != nil {
		heading := api.MessageOf(err, "Could not load boards")
		if api.IsNotFound(err) {
			heading = "Workspace not found"
		}
		return renderMessage(v.styles, v.width, v.height, v.styles.Error, heading, "Press esc to go back")
	}
	if v.ctrl.Empty() {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + renderHelpBar(v.styles, v.width, []helpEntry{
		{"↵", "open"}, {"n", "new"}, {"e", "rename"}, {"R", "rename ws"}, {"D", "del ws"}, {"esc", "back"},
	})
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	name := "This workspace"
	if ws := v.ctrl.Workspace(); ws != nil {
		name = ws.Name
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(name),
		"",
		s.TitleMuted.Render("No boards yet. Press 'n' to create your first board"),
		"",
		s.ButtonPrimary.Render(" New Board "),
		"",
		s.TitleMuted.Render("R rename • D delete workspace • esc back"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
