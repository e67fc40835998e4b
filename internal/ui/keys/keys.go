package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by every view
type KeyMap struct {
	Quit   key.Binding
	Back   key.Binding
	New    key.Binding
	Enter  key.Binding
	Delete key.Binding
	Tab    key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Edit   key.Binding
	Help   key.Binding
	Logout key.Binding

	// Board screen
	NewColumn    key.Binding
	EditColumn   key.Binding
	DeleteColumn key.Binding
	EditBoard    key.Binding
	DeleteBoard  key.Binding
	Grab         key.Binding
	GrabColumn   key.Binding
	Reload       key.Binding

	// Board list screen
	EditWorkspace   key.Binding
	DeleteWorkspace key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Logout: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "log out"),
		),
		NewColumn: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new column"),
		),
		EditColumn: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "rename column"),
		),
		DeleteColumn: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete column"),
		),
		EditBoard: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename board"),
		),
		DeleteBoard: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "delete board"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "grab card"),
		),
		GrabColumn: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grab column"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		EditWorkspace: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename workspace"),
		),
		DeleteWorkspace: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete workspace"),
		),
	}
}
