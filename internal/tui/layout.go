package tui

// Layout proportions
const (
	LeftBoxPercent = 50
	MinBoxWidth    = 20

	// Vertical layout: nav bar + footer line
	ChromeHeight = 2
)

// boxLayout holds calculated box widths for the View
type boxLayout struct {
	leftWidth  int
	rightWidth int
	height     int
}

// calculateLayout splits the terminal into the two boxes
func (m Model) calculateLayout() boxLayout {
	left := max(m.Width*LeftBoxPercent/100, MinBoxWidth)
	right := max(m.Width-left, MinBoxWidth)
	return boxLayout{
		leftWidth:  left,
		rightWidth: right,
		height:     max(m.Height-ChromeHeight, 3),
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	m.SearchBar.SetWidth(m.Width)
	m.Results.SetSize(layout.leftWidth, layout.height)
	m.Detail.SetSize(layout.rightWidth, layout.height)
	m.Watched.SetSize(layout.rightWidth, layout.height)
}
