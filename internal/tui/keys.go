package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Enter       key.Binding
	NextPane    key.Binding
	Search      key.Binding
	Escape      key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ToggleLeft  key.Binding
	ToggleRight key.Binding

	// Rating
	Rate       key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	AddWatched key.Binding

	// Watched list
	Remove key.Binding
	Filter key.Binding

	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/close"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch box"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		ToggleLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "toggle results"),
		),
		ToggleRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "toggle right box"),
		),

		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "rate"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("l", "right", "+"),
			key.WithHelp("→", "more stars"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("h", "left", "-"),
			key.WithHelp("←", "fewer stars"),
		),
		AddWatched: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to watched"),
		),

		Remove: key.NewBinding(
			key.WithKeys("x", "d", "delete"),
			key.WithHelp("x", "remove"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter watched"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// ratingForKey maps a digit key to a rating; "0" means 10
func ratingForKey(k string) (int, bool) {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return 0, false
	}
	if k == "0" {
		return 10, true
	}
	return int(k[0] - '0'), true
}
