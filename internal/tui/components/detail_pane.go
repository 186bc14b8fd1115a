package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// Layout constants for the detail pane
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailPane shows the open movie: overview, rating control and credits
type DetailPane struct {
	detail *domain.MovieDetail
	stars  StarRating

	loading      bool
	spinnerFrame int

	// rating state mirrored from the selection controller
	userRating    int
	watched       bool
	watchedRating int

	width      int
	height     int
	offset     int // body scroll offset
	maxVisible int
	focused    bool
	open       bool
}

// NewDetailPane creates an empty, expanded detail pane
func NewDetailPane() DetailPane {
	return DetailPane{stars: NewStarRating(), open: true}
}

// SetLoading clears the current detail and shows the loading indicator
func (d *DetailPane) SetLoading() {
	d.detail = nil
	d.loading = true
	d.offset = 0
	d.userRating = 0
}

// SetDetail shows detail and leaves the loading state
func (d *DetailPane) SetDetail(detail *domain.MovieDetail) {
	d.detail = detail
	d.loading = false
	d.offset = 0
}

// StopLoading leaves the loading state without a detail
func (d *DetailPane) StopLoading() {
	d.loading = false
}

// Clear resets the pane
func (d *DetailPane) Clear() {
	d.detail = nil
	d.loading = false
	d.offset = 0
	d.userRating = 0
	d.watched = false
	d.watchedRating = 0
}

// Detail returns the shown movie, or nil
func (d DetailPane) Detail() *domain.MovieDetail { return d.detail }

// IsLoading reports whether a fetch is in flight
func (d DetailPane) IsLoading() bool { return d.loading }

// SetRating sets the pending user rating shown by the star control
func (d *DetailPane) SetRating(rating int) { d.userRating = rating }

// SetWatched replaces the rating control with the stored rating
func (d *DetailPane) SetWatched(watched bool, rating int) {
	d.watched = watched
	d.watchedRating = rating
}

// SetSpinnerFrame advances the loading animation
func (d *DetailPane) SetSpinnerFrame(frame int) { d.spinnerFrame = frame }

// SetFocused sets keyboard focus
func (d *DetailPane) SetFocused(focused bool) { d.focused = focused }

// Toggle collapses or expands the box
func (d *DetailPane) Toggle() { d.open = !d.open }

// SetOpen sets the collapse state
func (d *DetailPane) SetOpen(open bool) { d.open = open }

// ScrollDown scrolls the body one line
func (d *DetailPane) ScrollDown() { d.offset++ }

// ScrollUp scrolls the body one line
func (d *DetailPane) ScrollUp() {
	if d.offset > 0 {
		d.offset--
	}
}

// SetSize updates the component dimensions
func (d *DetailPane) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.maxVisible = max(height-DetailBorderHeight-DetailScrollIndicators-2, 1) // title + blank line
}

// View renders the component
func (d DetailPane) View() string {
	contentWidth := max(d.width-3, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(toggleGlyph(d.open)+" Movie", contentWidth))

	if !d.open {
		return boxed(titleLine, d.width, d.height, d.focused)
	}

	if d.loading {
		body := titleLine + "\n\n" + styles.DimStyle.Render(spinner(d.spinnerFrame)+" Fetching data..")
		return boxed(body, d.width, d.height, d.focused)
	}

	if d.detail == nil {
		hint := styles.DimStyle.Render("← esc")
		return boxed(titleLine+"\n\n"+hint, d.width, d.height, d.focused)
	}

	content := d.renderDetail(contentWidth)
	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(d.maxVisible-len(headerLines)-len(footerLines), 1)

	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(d.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if len(headerLines) > 0 {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if len(footerLines) > 0 {
		parts = append(parts, footerLines...)
	}

	return boxed(strings.Join(parts, "\n"), d.width, d.height, d.focused)
}

func (d DetailPane) renderDetail(width int) detailContent {
	m := *d.detail
	return detailContent{
		header: d.renderHeader(m, width),
		body:   renderCredits(m, width),
		footer: d.renderRating(width),
	}
}

func (d DetailPane) renderHeader(m domain.MovieDetail, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Heading(), width)))
	b.WriteString("\n")

	// Meta line: Released • Runtime
	var meta []string
	if m.ReleaseDate != "" {
		meta = append(meta, m.ReleaseDate)
	}
	if m.Runtime != "" {
		meta = append(meta, m.Runtime)
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(strings.Join(meta, " • ")))
		b.WriteString("\n")
	}

	if m.Genre != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Genre, width)))
		b.WriteString("\n")
	}

	if m.ExternalRating > 0 {
		var ratingStyle lipgloss.Style
		switch {
		case m.ExternalRating >= 7:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case m.ExternalRating >= 5:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.PopcornYellow)
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		b.WriteString(ratingStyle.Render(fmt.Sprintf("⭐ %.1f IMDb rating", m.ExternalRating)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderCredits(m domain.MovieDetail, width int) string {
	bodyWidth := min(width-2, 80)

	var blocks []string
	if m.Plot != "" {
		blocks = append(blocks, lipgloss.NewStyle().Italic(true).Foreground(styles.LightGray).Render(wordWrap(m.Plot, bodyWidth)))
	}
	if m.Actors != "" {
		blocks = append(blocks, styles.SubtitleStyle.Render(wordWrap("Starring "+m.Actors, bodyWidth)))
	}
	if m.Director != "" {
		blocks = append(blocks, styles.SubtitleStyle.Render(wordWrap("Directed by "+m.Director, bodyWidth)))
	}
	return strings.Join(blocks, "\n\n")
}

func (d DetailPane) renderRating(width int) string {
	var b strings.Builder
	b.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	if d.watched {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("You rated this movie. Rating: %d", d.watchedRating)))
		return b.String()
	}

	b.WriteString(d.stars.View(d.userRating))
	if d.userRating > 0 {
		b.WriteString("\n")
		b.WriteString(styles.BadgeStyle.Render("+ Add to Watched") + styles.DimStyle.Render("  a"))
	}
	return b.String()
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
