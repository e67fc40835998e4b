package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/yusra/internal/ui/keys"
	"github.com/tgienger/yusra/internal/ui/styles"
)

// OpenBoard asks the app to show a board
type OpenBoard struct {
	BoardID string
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// prompt is a single line form used for every create and rename
type prompt struct {
	active bool
	title  string
	input  textinput.Model
	submit func(string) tea.Cmd
}

func newPrompt() prompt {
	input := textinput.New()
	input.CharLimit = 200
	return prompt{input: input}
}

func (p *prompt) open(title, placeholder, value string, submit func(string) tea.Cmd) tea.Cmd {
	p.active = true
	p.title = title
	p.submit = submit
	p.input.Placeholder = placeholder
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.input.Focus()
	return textinput.Blink
}

func (p *prompt) close() {
	p.active = false
	p.input.Blur()
	p.input.Reset()
}

// update handles a key while the prompt is open. Submitting closes the
// prompt; blank values are passed through and left to the submit func.
func (p *prompt) update(msg tea.KeyMsg, km keys.KeyMap) tea.Cmd {
	switch {
	case key.Matches(msg, km.Back):
		p.close()
		return nil
	case key.Matches(msg, km.Enter), msg.String() == "ctrl+s":
		value := p.input.Value()
		submit := p.submit
		p.close()
		return submit(value)
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// forward passes non-key messages such as cursor blinks to the input
func (p *prompt) forward(msg tea.Msg) tea.Cmd {
	if !p.active {
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *prompt) view(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(p.title),
		"",
		s.InputFocused.Width(inputWidth).Render(p.input.View()),
		"",
		s.TitleMuted.Render("Enter: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, width, height)
}

// confirm asks a yes/no question before a destructive action
type confirm struct {
	active bool
	title  string
	detail string
	onYes  func() tea.Cmd
}

func (c *confirm) open(title, detail string, onYes func() tea.Cmd) {
	c.active = true
	c.title = title
	c.detail = detail
	c.onYes = onYes
}

func (c *confirm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		c.active = false
		return c.onYes()
	case "n", "N", "esc":
		c.active = false
	}
	return nil
}

func (c *confirm) view(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(c.title),
		"",
		s.TitleMuted.Render(c.detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// helpEntry is one line of a help bar or popup
type helpEntry struct {
	key  string
	desc string
}

// renderHelpBar renders a one line shortcut summary, collapsing to a "?"
// hint when the terminal is narrow.
func renderHelpBar(s *styles.Styles, width int, entries []helpEntry) string {
	contentWidth := styles.ContentWidth(width)
	if contentWidth > 0 && contentWidth < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = s.HelpKey.Render(e.key) + " " + e.desc
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func renderHelpPopup(s *styles.Styles, width, height int, entries []helpEntry) string {
	contentWidth := styles.ContentWidth(width)

	lines := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s%s%s", s.HelpKey.Render(e.key), strings.Repeat(" ", max(1, 8-len(e.key))), e.desc))
	}
	lines = append(lines, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
	return styles.CenterView(centered, width, height)
}

// renderMessage renders a centered title with a hint below it
func renderMessage(s *styles.Styles, width, height int, title lipgloss.Style, heading, hint string) string {
	contentWidth := styles.ContentWidth(width)
	content := lipgloss.JoinVertical(lipgloss.Center,
		title.Render(heading),
		"",
		s.TitleMuted.Render(hint),
	)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}
