package views

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tgienger/yusra/internal/ui/styles"
)

// QuoteInterval is how long each header quote stays on screen
const QuoteInterval = 5 * time.Second

// HeaderHeight is the number of lines the header occupies
const HeaderHeight = 2

var quotes = []string{
	"For every hardship, there is ease… — Yusra",
	"Small steps every day lead to big results.",
	"Productivity begins with clarity.",
	"Stay consistent, not perfect.",
}

type quoteTickMsg struct{}

// Header is the brand line shown above every screen, with a rotating quote
type Header struct {
	styles *styles.Styles
	index  int
}

func NewHeader() *Header {
	return &Header{styles: styles.NewStyles()}
}

func (h *Header) Init() tea.Cmd { return h.tick() }

func (h *Header) tick() tea.Cmd {
	return tea.Tick(QuoteInterval, func(time.Time) tea.Msg { return quoteTickMsg{} })
}

// Update advances the quote on every tick and schedules the next one
func (h *Header) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(quoteTickMsg); !ok {
		return nil
	}
	h.index = (h.index + 1) % len(quotes)
	return h.tick()
}

func (h *Header) Quote() string { return quotes[h.index] }

func (h *Header) View(width int) string {
	brand := h.styles.Brand.Render("Yusra")
	room := width - lipgloss.Width(brand) - 4
	if room < 10 {
		return brand + "\n"
	}
	quote := h.styles.Quote.Render(ansi.Truncate(h.Quote(), room, "…"))
	gap := max(2, width-lipgloss.Width(brand)-lipgloss.Width(quote)-1)
	return " " + brand + strings.Repeat(" ", gap) + quote + "\n"
}
