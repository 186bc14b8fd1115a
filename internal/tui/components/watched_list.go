package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// WatchedList is the right box while browsing: summary and the watched movies
type WatchedList struct {
	rows    []service.FilterResult
	total   int
	summary domain.WatchSummary
	cursor  cursor

	width       int
	height      int
	focused     bool
	open        bool
	showSummary bool

	filterActive bool
	filterInput  textinput.Model
}

// NewWatchedList creates an empty, expanded watched list
func NewWatchedList(showSummary bool) WatchedList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return WatchedList{
		open:        true,
		showSummary: showSummary,
		filterInput: ti,
	}
}

// SetRows replaces the visible rows. total is the unfiltered list length.
func (w *WatchedList) SetRows(rows []service.FilterResult, total int) {
	w.rows = rows
	w.total = total
	w.cursor.clamp(len(rows))
}

// SetSummary sets the aggregate statistics
func (w *WatchedList) SetSummary(s domain.WatchSummary) { w.summary = s }

// SetFocused sets keyboard focus
func (w *WatchedList) SetFocused(focused bool) { w.focused = focused }

// IsFocused reports keyboard focus
func (w WatchedList) IsFocused() bool { return w.focused }

// Toggle collapses or expands the box
func (w *WatchedList) Toggle() { w.open = !w.open }

// SetOpen sets the collapse state
func (w *WatchedList) SetOpen(open bool) { w.open = open }

// IsOpen reports whether the box is expanded
func (w WatchedList) IsOpen() bool { return w.open }

// SetSize updates the component dimensions
func (w *WatchedList) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.recalcMaxVisible()
}

func (w *WatchedList) recalcMaxVisible() {
	reserved := BorderHeight + ScrollIndicatorLines + 1 // title
	if w.showSummary {
		reserved += 3
	}
	if w.filterActive {
		reserved++
	}
	w.cursor.maxVisible = max(w.height-reserved, 1)
	w.cursor.ensureVisible()
}

// SelectedEntry returns the highlighted entry
func (w WatchedList) SelectedEntry() *domain.WatchedEntry {
	if len(w.rows) == 0 {
		return nil
	}
	w.cursor.clamp(len(w.rows))
	e := w.rows[w.cursor.pos].Entry
	return &e
}

// StartFilter activates the filter input
func (w *WatchedList) StartFilter() tea.Cmd {
	w.filterActive = true
	w.recalcMaxVisible()
	return w.filterInput.Focus()
}

// IsFiltering returns true if a filter is applied
func (w WatchedList) IsFiltering() bool { return w.filterActive }

// IsFilterTyping returns true if the filter input has focus
func (w WatchedList) IsFilterTyping() bool {
	return w.filterActive && w.filterInput.Focused()
}

// FilterQuery returns the active filter text
func (w WatchedList) FilterQuery() string {
	if !w.filterActive {
		return ""
	}
	return w.filterInput.Value()
}

// ClearFilter deactivates the filter
func (w *WatchedList) ClearFilter() {
	w.filterActive = false
	w.filterInput.SetValue("")
	w.filterInput.Blur()
	w.cursor.reset()
	w.recalcMaxVisible()
}

// Update handles filter typing and navigation. The caller re-filters rows
// whenever FilterQuery changes.
func (w WatchedList) Update(msg tea.Msg) (WatchedList, tea.Cmd) {
	if !w.focused || !w.open {
		return w, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	if w.IsFilterTyping() {
		switch km.String() {
		case "esc":
			w.ClearFilter()
			return w, nil
		case "enter":
			// keep the filter, hand keys back to navigation
			w.filterInput.Blur()
			return w, nil
		case "backspace":
			if w.filterInput.Value() == "" {
				w.ClearFilter()
				return w, nil
			}
		}
		var cmd tea.Cmd
		w.filterInput, cmd = w.filterInput.Update(msg)
		w.cursor.reset()
		return w, cmd
	}

	w.cursor.move(km, len(w.rows))
	return w, nil
}

// View renders the box
func (w WatchedList) View() string {
	return boxed(w.renderContent(), w.width, w.height, w.focused)
}

func (w WatchedList) renderContent() string {
	itemWidth := max(w.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(toggleGlyph(w.open)+" Watched", itemWidth))
	if !w.open {
		return titleLine
	}

	parts := []string{titleLine}
	if w.showSummary {
		parts = append(parts, w.renderSummary(itemWidth), "")
	}

	switch {
	case len(w.rows) == 0 && w.filterActive && w.FilterQuery() != "":
		parts = append(parts, " ", styles.DimStyle.Render("No matches"))
	case len(w.rows) == 0:
		parts = append(parts, " ", styles.DimStyle.Render("Rate a movie to add it here"))
	default:
		start, end := w.cursor.window(len(w.rows))
		header := " "
		if start > 0 {
			header = styles.DimStyle.Render("↑ more")
		}
		parts = append(parts, header)
		for i := start; i < end; i++ {
			parts = append(parts, w.renderRow(w.rows[i], i == w.cursor.pos && w.focused, itemWidth))
		}
		footer := " "
		if end < len(w.rows) {
			footer = styles.DimStyle.Render("↓ more")
		}
		parts = append(parts, footer)
	}

	if w.filterActive {
		parts = append(parts, w.renderFilterBar())
	}
	return strings.Join(parts, "\n")
}

func (w WatchedList) renderSummary(width int) string {
	s := w.summary
	heading := styles.TitleStyle.Render("Movies you watched")
	line := fmt.Sprintf("#️⃣ %d movies   ⭐️ %.2f   🌟 %.2f   ⏳ %.2f min",
		s.Count, s.AvgExternalRating, s.AvgUserRating, s.AvgRuntimeMinutes)
	return heading + "\n" + styles.SubtitleStyle.Render(styles.Truncate(line, width))
}

func (w WatchedList) renderRow(r service.FilterResult, selected bool, width int) string {
	e := r.Entry
	stats := fmt.Sprintf("⭐️ %.1f  🌟 %d  ⏳ %d min", e.ExternalRating, e.UserRating, e.RuntimeMinutes)
	statsFg := styles.DimGray

	titleWidth := width - lipgloss.Width(stats) - 4
	title := styles.Truncate(e.Title, titleWidth)
	if len(r.MatchedIndexes) > 0 && title == e.Title {
		title = styles.RenderHighlighted(title, r.MatchedIndexes, selected)
	}

	pad := titleWidth - lipgloss.Width(title)
	if pad < 1 {
		pad = 1
	}

	parts := []styles.RowPart{
		{Text: title + strings.Repeat(" ", pad), Foreground: nil},
		{Text: stats, Foreground: &statsFg},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (w WatchedList) renderFilterBar() string {
	countStr := ""
	if w.FilterQuery() != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(w.rows), w.total))
	}
	return w.filterInput.View() + countStr
}
