package views

import (
	"fmt"
	"io"
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

type workspaceItem struct {
	workspace models.Workspace
}

func (i workspaceItem) Title() string       { return i.workspace.Name }
func (i workspaceItem) Description() string { return "" }
func (i workspaceItem) FilterValue() string { return i.workspace.Name }

// nameDelegate renders single line items for the workspace and board lists
type nameDelegate struct {
	styles *styles.Styles
	width  int
}

func (d nameDelegate) Height() int                               { return 1 }
func (d nameDelegate) Spacing() int                              { return 1 }
func (d nameDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d nameDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	named, ok := item.(list.DefaultItem)
	if !ok {
		return
	}
	width := max(d.width-4, 20)
	style := d.styles.ListItem.Width(width)
	if index == m.Index() {
		style = d.styles.ListSelected.Width(width)
	}
	fmt.Fprint(w, style.Render(named.Title()))
}

func newNameList(title string, delegate *nameDelegate, s *styles.Styles) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

// WorkspaceListView lists the user's workspaces
type WorkspaceListView struct {
	ctrl     *controller.Workspaces
	auth     *controller.Auth
	list     list.Model
	delegate *nameDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	prompt  prompt
	confirm confirm
	shown   []models.Workspace

	showHelpPopup bool
}

func NewWorkspaceListView(ctrl *controller.Workspaces, auth *controller.Auth) *WorkspaceListView {
	s := styles.NewStyles()
	delegate := &nameDelegate{styles: s, width: 80}

	return &WorkspaceListView{
		ctrl:     ctrl,
		auth:     auth,
		list:     newNameList("Workspaces", delegate, s),
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		prompt:   newPrompt(),
	}
}

func (v *WorkspaceListView) Init() tea.Cmd {
	return v.ctrl.Load()
}

func (v *WorkspaceListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.New):
			return v, v.prompt.open("New Workspace", "Workspace name", "", v.ctrl.Create)
		case key.Matches(msg, v.keys.Reload):
			return v, v.ctrl.Load()
		case key.Matches(msg, v.keys.Logout):
			return v, v.auth.Logout()
		case key.Matches(msg, v.keys.Enter):
			if ws, ok := v.selected(); ok {
				return v, func() tea.Msg {
					return controller.NavigateToWorkspace{WorkspaceID: ws.ID}
				}
			}
			return v, nil
		case key.Matches(msg, v.keys.Edit):
			if ws, ok := v.selected(); ok {
				id := ws.ID
				return v, v.prompt.open("Rename Workspace", "Workspace name", ws.Name, func(name string) tea.Cmd {
					return v.ctrl.Rename(id, name)
				})
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if ws, ok := v.selected(); ok {
				id := ws.ID
				v.confirm.open("Delete Workspace?",
					fmt.Sprintf("%q and all of its boards will be deleted.", ws.Name),
					func() tea.Cmd { return v.ctrl.Delete(id) })
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

func (v *WorkspaceListView) selected() (models.Workspace, bool) {
	item, ok := v.list.SelectedItem().(workspaceItem)
	return item.workspace, ok
}

func (v *WorkspaceListView) forwardList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *WorkspaceListView) syncItems() {
	workspaces := v.ctrl.Items()
	if slices.Equal(workspaces, v.shown) {
		return
	}
	v.shown = workspaces
	items := make([]list.Item, len(workspaces))
	for i, ws := range workspaces {
		items[i] = workspaceItem{workspace: ws}
	}
	v.list.SetItems(items)
}

func (v *WorkspaceListView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height, []helpEntry{
			{"↵", "open workspace"},
			{"n", "new workspace"},
			{"e", "rename workspace"},
			{"d", "delete workspace"},
			{"/", "filter"},
			{"ctrl+r", "reload"},
			{"x", "log out"},
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
		hint := "Press ctrl+r to retry or x to log out"
		if api.IsUnauthorized(err) {
			hint = "Your session has expired. Press x to log in again"
		}
		return renderMessage(v.styles, v.width, v.height, v.styles.Error,
			api.MessageOf(err, "Could not load workspaces"), hint)
	}
	if v.ctrl.Empty() {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + renderHelpBar(v.styles, v.width, []helpEntry{
		{"↵", "open"}, {"n", "new"}, {"e", "rename"}, {"d", "del"}, {"x", "log out"}, {"q", "quit"},
	})
	return styles.CenterView(content, v.width, v.height)
}

func (v *WorkspaceListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Workspaces"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first workspace"),
		"",
		s.ButtonPrimary.Render(" New Workspace "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
