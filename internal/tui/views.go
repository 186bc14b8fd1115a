package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	right := m.Watched.View()
	if m.Selection.State() == service.ViewViewing {
		right = m.Detail.View()
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.Results.View(), right)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.SearchBar.View(),
		content,
		m.renderFooter(),
	)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	// Center section: hints for the current context
	var hints []string
	hint := func(k, desc string) {
		hints = append(hints, styles.HelpKeyStyle.Render(k)+" "+styles.HelpDescStyle.Render(desc))
	}
	switch {
	case m.Focus == FocusSearch:
		hint("enter", "results")
	case m.Selection.State() == service.ViewViewing:
		hint("1-0", "rate")
		if m.Selection.CanAdd() {
			hint("a", "add")
		}
		hint("esc", "close")
	case m.Focus == FocusRight:
		hint("x", "remove")
		hint("f", "filter")
	default:
		hint("enter", "open")
		hint("/", "search")
	}
	center := strings.Join(hints, "  ")

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH & NAVIGATION             MOVIE
  /          Search (clears)       1-9, 0  Rate 1-10
  enter      Open/close movie      ←/→     Fewer/more stars
  tab        Switch box            a       Add to watched
  j/k        Up/down               esc     Close movie
  g/G        First/last item
  [ / ]      Collapse boxes       WATCHED
                                   x/d     Remove
  q          Quit                  f       Filter by title
  ?          This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
