package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/omdb"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/store"
	tu "github.com/mmcdole/popcorn/internal/testing"
)

func newTestModel(t *testing.T) (Model, *tu.FakeOMDb) {
	t.Helper()
	srv := tu.NewFakeOMDb(t)
	client := omdb.NewClient(srv.URL, "key", nil)

	st, err := store.Open("", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	m := NewModel(
		service.NewSearchService(client, nil),
		service.NewDetailService(client, nil),
		service.NewWatchlistService(st, nil),
		nil,
		true,
	)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}), srv
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// openInception opens the Inception detail and applies the fetched result
func openInception(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.selectMovie(tu.InceptionID)
	if cmd == nil {
		t.Fatal("expected a detail command")
	}
	msg, ok := cmd().(DetailLoadedMsg)
	if !ok {
		t.Fatalf("expected DetailLoadedMsg")
	}
	return update(t, m, msg)
}

func TestSearch(t *testing.T) {
	t.Run("Short query issues no request", func(t *testing.T) {
		m, srv := newTestModel(t)
		m.SearchBar.SetQuery("In")

		if cmd := m.onQueryChanged(); cmd != nil {
			t.Error("expected no command for a short query")
		}
		if srv.Calls() != 0 {
			t.Errorf("expected no requests, got %d", srv.Calls())
		}
		if m.Results.IsLoading() {
			t.Error("expected no loading indicator")
		}
	})

	t.Run("Typing updates the query", func(t *testing.T) {
		m, _ := newTestModel(t)
		for _, r := range "Inc" {
			m = update(t, m, keyPress(string(r)))
		}
		if m.SearchBar.Query() != "Inc" {
			t.Errorf("expected query Inc, got %q", m.SearchBar.Query())
		}
		if !m.Results.IsLoading() {
			t.Error("expected a search to be in flight")
		}
	})

	t.Run("Results replace the list", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.SearchBar.SetQuery("Inception")
		cmd := m.onQueryChanged()
		if !m.Results.IsLoading() {
			t.Fatal("expected loading state")
		}

		m = update(t, m, cmd())
		items := m.Results.Items()
		if len(items) != 1 || items[0].ID != tu.InceptionID {
			t.Fatalf("unexpected results %+v", items)
		}
		if m.Results.IsLoading() {
			t.Error("expected loading to end")
		}
	})

	t.Run("Stale results are dropped", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.SearchBar.SetQuery("Incep")
		m.onQueryChanged()
		m.SearchBar.SetQuery("Inception")
		m.onQueryChanged()

		m = update(t, m, SearchResultsMsg{Seq: 1, Query: "Incep", Results: []domain.MovieSummary{{ID: "old", Title: "Old"}}})
		if len(m.Results.Items()) != 0 {
			t.Errorf("expected stale results to be ignored, got %+v", m.Results.Items())
		}
		if !m.Results.IsLoading() {
			t.Error("expected newest search to still be loading")
		}
	})

	t.Run("Failure shows the fixed message", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.SearchBar.SetQuery("zzzzzz")
		cmd := m.onQueryChanged()

		m = update(t, m, cmd())
		if m.Results.Error() != service.SearchErrorMessage {
			t.Errorf("unexpected error text %q", m.Results.Error())
		}
		if len(m.Results.Items()) != 0 {
			t.Error("expected results to be cleared")
		}
	})
}

func TestDetail(t *testing.T) {
	t.Run("Opening loads the detail", func(t *testing.T) {
		m, _ := newTestModel(t)
		m = openInception(t, m)

		if m.Selection.State() != service.ViewViewing {
			t.Fatalf("expected viewing, got %v", m.Selection.State())
		}
		d := m.Detail.Detail()
		if d == nil || d.Title != "Inception" {
			t.Fatalf("unexpected detail %+v", d)
		}
	})

	t.Run("Selecting the open movie closes it", func(t *testing.T) {
		m, _ := newTestModel(t)
		m = openInception(t, m)

		m.selectMovie(tu.InceptionID)
		if m.Selection.State() != service.ViewBrowsing {
			t.Errorf("expected browsing, got %v", m.Selection.State())
		}
		if m.Detail.IsLoading() || m.Detail.Detail() != nil {
			t.Error("expected the detail pane to be cleared")
		}
	})

	t.Run("Stale detail is dropped", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.selectMovie("tt0000001")
		m.selectMovie(tu.InceptionID)

		m = update(t, m, DetailLoadedMsg{Seq: 1, ID: "tt0000001", Detail: &domain.MovieDetail{ID: "tt0000001", Title: "Old"}})
		if m.Detail.Detail() != nil {
			t.Error("expected stale detail to be ignored")
		}
		if !m.Detail.IsLoading() {
			t.Error("expected the newest fetch to still be loading")
		}
	})

	t.Run("Failure leaves neither loading nor detail", func(t *testing.T) {
		m, _ := newTestModel(t)
		cmd := m.selectMovie("tt0000000")
		msg, ok := cmd().(DetailFailedMsg)
		if !ok {
			t.Fatal("expected DetailFailedMsg")
		}

		m = update(t, m, msg)
		if m.Detail.IsLoading() {
			t.Error("expected loading to end")
		}
		if m.Detail.Detail() != nil {
			t.Error("expected no detail")
		}
		if m.Selection.State() != service.ViewViewing {
			t.Error("expected the movie to stay open")
		}
	})

	t.Run("Escape closes", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)
		m = openInception(t, m)

		m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
		if m.Selection.State() != service.ViewBrowsing {
			t.Errorf("expected browsing, got %v", m.Selection.State())
		}
	})
}

func TestWatched(t *testing.T) {
	t.Run("Rate and add", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)
		m = openInception(t, m)

		m = update(t, m, keyPress("8"))
		if m.Selection.UserRating() != 8 {
			t.Fatalf("expected rating 8, got %d", m.Selection.UserRating())
		}

		m = update(t, m, keyPress("a"))
		entries := m.WatchlistSvc.Entries()
		if len(entries) != 1 {
			t.Fatalf("expected 1 watched entry, got %d", len(entries))
		}
		e := entries[0]
		if e.UserRating != 8 || e.RatingRevisionCount != 1 || e.RuntimeMinutes != 148 || e.ExternalRating != 8.8 {
			t.Errorf("unexpected entry %+v", e)
		}
		if m.Selection.State() != service.ViewBrowsing {
			t.Error("expected browsing after add")
		}
	})

	t.Run("Add without rating is refused", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)
		m = openInception(t, m)

		m = update(t, m, keyPress("a"))
		if len(m.WatchlistSvc.Entries()) != 0 {
			t.Error("expected nothing to be added")
		}
		if m.Selection.State() != service.ViewViewing {
			t.Error("expected the movie to stay open")
		}
	})

	t.Run("Arrow keys change the rating", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)
		m = openInception(t, m)

		m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		if m.Selection.UserRating() != 1 {
			t.Errorf("expected rating 1, got %d", m.Selection.UserRating())
		}
		if m.Selection.Revisions() != 3 {
			t.Errorf("expected 3 revisions, got %d", m.Selection.Revisions())
		}
	})

	t.Run("Remove highlighted entry", func(t *testing.T) {
		m, _ := newTestModel(t)
		if err := m.WatchlistSvc.Add(domain.WatchedEntry{ID: "a", Title: "A", UserRating: 5}); err != nil {
			t.Fatal(err)
		}
		m.refreshWatched()
		m.setFocus(FocusRight)

		m = update(t, m, keyPress("x"))
		if len(m.WatchlistSvc.Entries()) != 0 {
			t.Error("expected entry to be removed")
		}
	})

	t.Run("Filter narrows the list", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.WatchlistSvc.Add(domain.WatchedEntry{ID: "1", Title: "Inception", UserRating: 9})
		m.WatchlistSvc.Add(domain.WatchedEntry{ID: "2", Title: "Memento", UserRating: 8})
		m.refreshWatched()
		m.setFocus(FocusResults)

		m = update(t, m, keyPress("f"))
		for _, r := range "mem" {
			m = update(t, m, keyPress(string(r)))
		}
		sel := m.Watched.SelectedEntry()
		if sel == nil || sel.ID != "2" {
			t.Errorf("expected Memento to be highlighted, got %+v", sel)
		}

		m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
		if m.Watched.IsFiltering() {
			t.Error("expected filter to be cleared")
		}
	})
}

func TestRatingForKey(t *testing.T) {
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"9", 9, true},
		{"0", 10, true},
		{"a", 0, false},
		{"10", 0, false},
	}
	for _, tt := range tests {
		got, ok := ratingForKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ratingForKey(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNavigation(t *testing.T) {
	t.Run("Help opens and any key closes it", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)

		m = update(t, m, keyPress("?"))
		if m.State != StateHelp {
			t.Fatal("expected help state")
		}
		if !strings.Contains(m.View(), "Press any key to return") {
			t.Error("expected help text in view")
		}

		m = update(t, m, keyPress("j"))
		if m.State != StateBrowsing {
			t.Error("expected any key to close help")
		}
	})

	t.Run("Boxes collapse and expand", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)

		m = update(t, m, keyPress("["))
		if m.Results.IsOpen() {
			t.Error("expected results box to collapse")
		}
		m = update(t, m, keyPress("["))
		if !m.Results.IsOpen() {
			t.Error("expected results box to expand")
		}

		m = update(t, m, keyPress("]"))
		if m.Watched.IsOpen() {
			t.Error("expected right box to collapse")
		}
	})

	t.Run("Slash focuses and clears the search", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.SearchBar.SetQuery("Inception")
		m.setFocus(FocusResults)

		m = update(t, m, keyPress("/"))
		if m.Focus != FocusSearch {
			t.Error("expected search focus")
		}
		if m.SearchBar.Query() != "" {
			t.Errorf("expected cleared query, got %q", m.SearchBar.Query())
		}
	})

	t.Run("Tab cycles between boxes", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)

		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.Focus != FocusRight {
			t.Errorf("expected right box focus, got %v", m.Focus)
		}
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.Focus != FocusResults {
			t.Errorf("expected results focus, got %v", m.Focus)
		}
	})
}

func TestStatus(t *testing.T) {
	t.Run("Refused add reports the error", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.setFocus(FocusResults)
		m = openInception(t, m)

		next, cmd := m.Update(keyPress("a"))
		m = next.(Model)
		if cmd == nil {
			t.Fatal("expected an error command")
		}
		msg, ok := cmd().(ErrMsg)
		if !ok {
			t.Fatal("expected ErrMsg")
		}
		if !errors.Is(msg.Err, domain.ErrNotRated) {
			t.Fatalf("expected ErrNotRated, got %v", msg.Err)
		}

		m = update(t, m, msg)
		if m.StatusMsg != "Rate the movie before adding it" || !m.StatusIsErr {
			t.Errorf("unexpected status %q (error %v)", m.StatusMsg, m.StatusIsErr)
		}
	})

	t.Run("Stale clear keeps the newer message", func(t *testing.T) {
		m, _ := newTestModel(t)
		m = update(t, m, StatusMsg{Message: "Added Inception to watched"})
		first := m.statusSeq
		m = update(t, m, ErrMsg{Err: domain.ErrAlreadyWatched})

		m = update(t, m, ClearStatusMsg{Seq: first})
		if m.StatusMsg != "Already in your watched list" {
			t.Fatalf("expected newer message to survive, got %q", m.StatusMsg)
		}

		m = update(t, m, ClearStatusMsg{Seq: m.statusSeq})
		if m.StatusMsg != "" || m.StatusIsErr {
			t.Errorf("expected status to clear, got %q", m.StatusMsg)
		}
	})
}
