package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// SearchBar is the nav bar: logo, query input and result count
type SearchBar struct {
	input     textinput.Model
	width     int
	count     int
	prevQuery string // tracks query changes between updates
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus focuses the input. With clear set the query is emptied as well.
func (s *SearchBar) Focus(clear bool) tea.Cmd {
	if clear {
		s.input.SetValue("")
	}
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Query returns the current query
func (s SearchBar) Query() string {
	return s.input.Value()
}

// SetQuery replaces the query text
func (s *SearchBar) SetQuery(q string) {
	s.input.SetValue(q)
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (s *SearchBar) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// SetCount sets the number shown in "Found N results"
func (s *SearchBar) SetCount(n int) {
	s.count = n
}

// SetWidth updates the bar width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width/2-6, 10)
}

// Init initializes the component
func (s SearchBar) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the input while it is focused
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if !s.input.Focused() {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the nav bar on a single line
func (s SearchBar) View() string {
	logo := styles.LogoStyle.Render("🍿 popcorn")
	count := styles.SubtitleStyle.Render("Found ") +
		styles.TitleStyle.Render(fmt.Sprintf("%d", s.count)) +
		styles.SubtitleStyle.Render(" results")

	input := s.input.View()

	gap := s.width - lipgloss.Width(logo) - lipgloss.Width(input) - lipgloss.Width(count) - 2
	if gap < 1 {
		gap = 1
	}
	left := gap / 2
	right := gap - left

	return lipgloss.JoinHorizontal(lipgloss.Top,
		logo,
		lipgloss.NewStyle().Width(left+1).Render(""),
		input,
		lipgloss.NewStyle().Width(right+1).Render(""),
		count,
	)
}
