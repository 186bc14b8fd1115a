package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/service"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	if m.Focus == FocusRight && m.Watched.IsFilterTyping() && m.Selection.State() == service.ViewBrowsing {
		return m.handleFilterKey(msg)
	}

	viewing := m.Selection.State() == service.ViewViewing

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		cmd := m.focusSearch(true)
		return m, cmd

	case key.Matches(msg, Keys.Escape):
		if viewing {
			cmd := m.closeDetail()
			return m, cmd
		}
		if m.Watched.IsFiltering() {
			m.Watched.ClearFilter()
			m.refreshWatched()
		}
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		if m.Focus == FocusResults {
			cmd := m.setFocus(FocusRight)
			return m, cmd
		}
		cmd := m.setFocus(FocusResults)
		return m, cmd

	case key.Matches(msg, Keys.ToggleLeft):
		m.Results.Toggle()
		return m, nil

	case key.Matches(msg, Keys.ToggleRight):
		m.rightOpen = !m.rightOpen
		m.Detail.SetOpen(m.rightOpen)
		m.Watched.SetOpen(m.rightOpen)
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if m.Focus == FocusResults {
			if item := m.Results.SelectedItem(); item != nil {
				cmd := m.selectMovie(item.ID)
				return m, cmd
			}
			return m, nil
		}
		// Enter outside a list jumps back to a fresh search
		cmd := m.focusSearch(true)
		return m, cmd
	}

	if viewing {
		switch {
		case key.Matches(msg, Keys.Rate):
			if r, ok := ratingForKey(msg.String()); ok {
				m.setRating(r)
			}
			return m, nil
		case key.Matches(msg, Keys.RateUp):
			m.setRating(min(m.Selection.UserRating()+1, 10))
			return m, nil
		case key.Matches(msg, Keys.RateDown):
			if r := m.Selection.UserRating(); r > 1 {
				m.setRating(r - 1)
			}
			return m, nil
		case key.Matches(msg, Keys.AddWatched):
			cmd := m.addWatched()
			return m, cmd
		}

		if m.Focus == FocusRight {
			switch {
			case key.Matches(msg, Keys.ScrollDown):
				m.Detail.ScrollDown()
			case key.Matches(msg, Keys.ScrollUp):
				m.Detail.ScrollUp()
			}
			return m, nil
		}
	} else {
		switch {
		case key.Matches(msg, Keys.Remove):
			if m.Focus == FocusRight {
				cmd := m.removeWatched()
				return m, cmd
			}
			return m, nil
		case key.Matches(msg, Keys.Filter):
			cmd := m.setFocus(FocusRight)
			filterCmd := m.Watched.StartFilter()
			return m, tea.Batch(cmd, filterCmd)
		}
	}

	// Route navigation to the focused list
	var cmd tea.Cmd
	switch m.Focus {
	case FocusResults:
		m.Results, cmd = m.Results.Update(msg)
	case FocusRight:
		m.Watched, cmd = m.Watched.Update(msg)
	}
	return m, cmd
}

// handleSearchKey routes keys while the query input has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab", "down":
		cmd := m.setFocus(FocusResults)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	cmds = append(cmds, cmd)

	if m.SearchBar.QueryChanged() {
		cmds = append(cmds, m.onQueryChanged())
	}
	return m, tea.Batch(cmds...)
}

// handleFilterKey routes keys while the watched filter input has focus
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.Watched.FilterQuery()

	var cmd tea.Cmd
	m.Watched, cmd = m.Watched.Update(msg)

	if m.Watched.FilterQuery() != before || !m.Watched.IsFiltering() {
		m.refreshWatched()
	}
	return m, cmd
}

// focusSearch focuses the query input, optionally clearing it
func (m *Model) focusSearch(clear bool) tea.Cmd {
	cmd := m.setFocus(FocusSearch)
	if !clear || m.SearchBar.Query() == "" {
		return cmd
	}
	m.SearchBar.SetQuery("")
	m.SearchBar.QueryChanged()
	return tea.Batch(cmd, m.onQueryChanged())
}
