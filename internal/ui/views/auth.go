package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/yusra/internal/controller"
	"github.com/tgienger/yusra/internal/ui/keys"
	"github.com/tgienger/yusra/internal/ui/styles"
)

type authMode int

const (
	authModeLogin authMode = iota
	authModeRegister
)

// AuthView is the login and registration form
type AuthView struct {
	ctrl   *controller.Auth
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	mode       authMode
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	focusIdx   int // index into fields(), len(fields()) is the submit button
	submitting bool
	errMsg     string
}

func NewAuthView(ctrl *controller.Auth) *AuthView {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 200

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	v := &AuthView{
		ctrl:     ctrl,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		name:     name,
		email:    email,
		password: password,
	}
	v.updateFocus()
	return v
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *AuthView) fields() []*textinput.Model {
	if v.mode == authModeRegister {
		return []*textinput.Model{&v.name, &v.email, &v.password}
	}
	return []*textinput.Model{&v.email, &v.password}
}

// Registering reports whether the register form is shown
func (v *AuthView) Registering() bool { return v.mode == authModeRegister }

// Err returns the message of the last failed attempt
func (v *AuthView) Err() string { return v.errMsg }

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case controller.AuthFailed:
		v.submitting = false
		v.errMsg = msg.Message
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	cmd := v.ctrl.Update(msg)
	if fields := v.fields(); v.focusIdx < len(fields) {
		var blink tea.Cmd
		*fields[v.focusIdx], blink = fields[v.focusIdx].Update(msg)
		cmd = tea.Batch(cmd, blink)
	}
	return v, cmd
}

func (v *AuthView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := v.fields()
	switch {
	case msg.String() == "ctrl+c":
		return v, tea.Quit

	case msg.String() == "ctrl+n":
		if v.mode == authModeLogin {
			v.mode = authModeRegister
		} else {
			v.mode = authModeLogin
		}
		v.errMsg = ""
		v.focusIdx = 0
		v.updateFocus()
		return v, textinput.Blink

	case msg.String() == "shift+tab", msg.String() == "up":
		v.focusIdx = (v.focusIdx + len(fields)) % (len(fields) + 1)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab), msg.String() == "down":
		v.focusIdx = (v.focusIdx + 1) % (len(fields) + 1)
		v.updateFocus()
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submit()

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < len(fields) {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.submit()
	}

	if v.focusIdx < len(fields) {
		var cmd tea.Cmd
		*fields[v.focusIdx], cmd = fields[v.focusIdx].Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *AuthView) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	v.submitting = true
	v.errMsg = ""
	if v.mode == authModeRegister {
		return v.ctrl.Register(v.name.Value(), v.email.Value(), v.password.Value())
	}
	return v.ctrl.Login(v.email.Value(), v.password.Value())
}

func (v *AuthView) updateFocus() {
	for i, f := range v.fields() {
		if i == v.focusIdx {
			f.Focus()
		} else {
			f.Blur()
		}
	}
	if v.mode == authModeLogin {
		v.name.Blur()
	}
}

func (v *AuthView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	title := "Log in"
	button := " Log in "
	switchHint := "Ctrl+N: create an account"
	if v.mode == authModeRegister {
		title = "Create an account"
		button = " Register "
		switchHint = "Ctrl+N: back to log in"
	}

	rows := []string{s.Title.Render(title), ""}
	for i, f := range v.fields() {
		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		rows = append(rows, style.Width(inputWidth).Render(f.View()))
	}

	btnStyle := s.Button
	if v.focusIdx == len(v.fields()) {
		btnStyle = s.ButtonFocused
	}
	if v.submitting {
		button = " Please wait… "
	}
	rows = append(rows, "", btnStyle.Render(button))

	if v.errMsg != "" {
		rows = append(rows, "", s.Error.Render(v.errMsg))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Enter: submit • "+switchHint))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}
