package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// ResultList is the left box: loading indicator, error message or search hits
type ResultList struct {
	items  []domain.MovieSummary
	cursor cursor

	width   int
	height  int
	focused bool
	open    bool // collapsed when false

	loading      bool
	spinnerFrame int
	errMsg       string

	openID string // id of the movie shown in the detail pane
}

// NewResultList creates an empty, expanded result list
func NewResultList() ResultList {
	return ResultList{open: true}
}

// SetItems replaces the hits and clears loading and error state
func (r *ResultList) SetItems(items []domain.MovieSummary) {
	r.items = items
	r.loading = false
	r.errMsg = ""
	r.cursor.reset()
}

// SetLoading shows the loading indicator
func (r *ResultList) SetLoading(loading bool) {
	r.loading = loading
	if loading {
		r.errMsg = ""
	}
}

// SetError shows msg instead of the list and drops the hits
func (r *ResultList) SetError(msg string) {
	r.items = nil
	r.loading = false
	r.errMsg = msg
	r.cursor.reset()
}

// IsLoading reports whether a search is in flight
func (r ResultList) IsLoading() bool { return r.loading }

// Error returns the displayed error message
func (r ResultList) Error() string { return r.errMsg }

// Items returns the current hits
func (r ResultList) Items() []domain.MovieSummary { return r.items }

// SetOpenID marks the movie currently shown in the detail pane
func (r *ResultList) SetOpenID(id string) { r.openID = id }

// SetSpinnerFrame advances the loading animation
func (r *ResultList) SetSpinnerFrame(frame int) { r.spinnerFrame = frame }

// SetFocused sets keyboard focus
func (r *ResultList) SetFocused(focused bool) { r.focused = focused }

// IsFocused reports keyboard focus
func (r ResultList) IsFocused() bool { return r.focused }

// Toggle collapses or expands the box
func (r *ResultList) Toggle() { r.open = !r.open }

// IsOpen reports whether the box is expanded
func (r ResultList) IsOpen() bool { return r.open }

// SetSize updates the component dimensions
func (r *ResultList) SetSize(width, height int) {
	r.width = width
	r.height = height
	// title line and scroll indicators sit inside the border
	r.cursor.maxVisible = max(height-BorderHeight-ScrollIndicatorLines-1, 1)
	r.cursor.ensureVisible()
}

// SelectedItem returns the highlighted hit
func (r ResultList) SelectedItem() *domain.MovieSummary {
	if r.loading || r.errMsg != "" || len(r.items) == 0 {
		return nil
	}
	r.cursor.clamp(len(r.items))
	return &r.items[r.cursor.pos]
}

// Update handles navigation keys while focused
func (r ResultList) Update(msg tea.Msg) (ResultList, tea.Cmd) {
	if !r.focused || !r.open || r.loading {
		return r, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		r.cursor.move(km, len(r.items))
	}
	return r, nil
}

// View renders the box
func (r ResultList) View() string {
	return boxed(r.renderContent(), r.width, r.height, r.focused)
}

func (r ResultList) renderContent() string {
	itemWidth := max(r.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(toggleGlyph(r.open)+" Results", itemWidth))

	if !r.open {
		return titleLine
	}

	switch {
	case r.loading:
		return titleLine + "\n \n" + styles.DimStyle.Render(spinner(r.spinnerFrame)+" Fetching data..")
	case r.errMsg != "":
		return titleLine + "\n \n" + styles.ErrorStyle.Render("⛔ "+r.errMsg)
	case len(r.items) == 0:
		return titleLine + "\n \n" + styles.DimStyle.Render("No movies")
	}

	start, end := r.cursor.window(len(r.items))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(r.items[i], i == r.cursor.pos && r.focused, itemWidth))
	}

	header := " "
	if start > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(r.items) {
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (r ResultList) renderItem(item domain.MovieSummary, selected bool, width int) string {
	marker := "  "
	markerFg := styles.DimGray
	if item.ID == r.openID {
		marker = "▸ "
		markerFg = styles.PopcornYellow
	}

	year := ""
	if item.Year != "" {
		year = "🗓 " + item.Year
	}
	yearFg := styles.DimGray

	titleWidth := width - 4 - lipgloss.Width(year) - 1
	parts := []styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: styles.Truncate(item.Title, titleWidth) + " ", Foreground: nil},
		{Text: year, Foreground: &yearFg},
	}
	return styles.RenderListRow(parts, selected, width)
}
