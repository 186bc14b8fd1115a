package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// ListKeyMap defines key bindings for list navigation
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
}

// DefaultListKeyMap returns the default list key bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
	}
}

// ListKeys is the shared list key bindings instance
var ListKeys = DefaultListKeyMap()

// Layout constants shared by the boxed components
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// cursor is the scroll state shared by the list components
type cursor struct {
	pos        int
	offset     int
	maxVisible int
}

// move applies a navigation key, returning true when it was handled
func (c *cursor) move(msg tea.KeyMsg, count int) bool {
	if count == 0 {
		return false
	}
	switch {
	case key.Matches(msg, ListKeys.Down):
		if c.pos < count-1 {
			c.pos++
		}
	case key.Matches(msg, ListKeys.Up):
		if c.pos > 0 {
			c.pos--
		}
	case key.Matches(msg, ListKeys.Home):
		c.pos = 0
		c.offset = 0
	case key.Matches(msg, ListKeys.End):
		c.pos = count - 1
	case key.Matches(msg, ListKeys.HalfDown):
		c.pos = min(c.pos+c.maxVisible/2, count-1)
	case key.Matches(msg, ListKeys.HalfUp):
		c.pos = max(c.pos-c.maxVisible/2, 0)
	default:
		return false
	}
	c.ensureVisible()
	return true
}

func (c *cursor) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+c.maxVisible {
		c.offset = c.pos - c.maxVisible + 1
	}
}

// clamp keeps the cursor inside a list of count items
func (c *cursor) clamp(count int) {
	if c.pos >= count {
		c.pos = count - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
	if c.offset > c.pos {
		c.offset = c.pos
	}
	c.ensureVisible()
}

func (c *cursor) reset() {
	c.pos = 0
	c.offset = 0
}

// window returns the visible [start, end) range of a list of count items
func (c cursor) window(count int) (int, int) {
	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}
	return c.offset, end
}

// boxed wraps content in the focus-dependent border at exactly width x height
func boxed(content string, width, height int, focused bool) string {
	style := styles.InactiveBorder
	if focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(width-frameW, 0)).
		Height(max(height-frameH, 0)).
		Render(content)
}

// toggleGlyph is the collapse button shown in a box title
func toggleGlyph(open bool) string {
	if open {
		return "[–]"
	}
	return "[+]"
}

// splitLines splits s on newlines; empty input has no lines
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
