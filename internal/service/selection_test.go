package service

import (
	"errors"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
)

func inception() *domain.MovieDetail {
	return &domain.MovieDetail{
		ID:             "tt1375666",
		Title:          "Inception",
		Year:           "2010",
		RuntimeMinutes: 148,
		ExternalRating: 8.8,
	}
}

func TestSelection(t *testing.T) {
	t.Run("Starts browsing", func(t *testing.T) {
		sel := NewSelection(newWatchlist(t), nil)
		if sel.State() != ViewBrowsing || sel.SelectedID() != "" {
			t.Errorf("unexpected initial state %v %q", sel.State(), sel.SelectedID())
		}
	})

	t.Run("Select toggles", func(t *testing.T) {
		sel := NewSelection(newWatchlist(t), nil)

		if !sel.Select("tt1375666") {
			t.Fatal("expected first select to require a fetch")
		}
		if sel.State() != ViewViewing || sel.SessionID() == "" {
			t.Fatalf("expected viewing with a session, got %v %q", sel.State(), sel.SessionID())
		}

		if sel.Select("tt1375666") {
			t.Error("expected second select not to fetch")
		}
		if sel.State() != ViewBrowsing {
			t.Errorf("expected browsing after toggle, got %v", sel.State())
		}
	})

	t.Run("Switching resets the session", func(t *testing.T) {
		sel := NewSelection(newWatchlist(t), nil)
		sel.Select("a")
		sel.SetRating(4)
		first := sel.SessionID()

		if !sel.Select("b") {
			t.Fatal("expected switching to fetch")
		}
		if sel.UserRating() != 0 || sel.Revisions() != 0 {
			t.Errorf("expected reset rating, got %d/%d", sel.UserRating(), sel.Revisions())
		}
		if sel.SessionID() == first {
			t.Error("expected a new session id")
		}
	})

	t.Run("Revisions count nonzero changes", func(t *testing.T) {
		sel := NewSelection(newWatchlist(t), nil)
		sel.Select("a")

		for _, r := range []int{3, 3, 7, 0, 7} {
			if err := sel.SetRating(r); err != nil {
				t.Fatalf("set %d: %v", r, err)
			}
		}
		if sel.Revisions() != 3 {
			t.Errorf("expected 3 revisions, got %d", sel.Revisions())
		}
		if sel.UserRating() != 7 {
			t.Errorf("expected rating 7, got %d", sel.UserRating())
		}
	})

	t.Run("Rating bounds", func(t *testing.T) {
		sel := NewSelection(newWatchlist(t), nil)
		if err := sel.SetRating(5); !errors.Is(err, domain.ErrNoSelection) {
			t.Errorf("expected ErrNoSelection while browsing, got %v", err)
		}
		sel.Select("a")
		if err := sel.SetRating(11); !errors.Is(err, domain.ErrInvalidRating) {
			t.Errorf("expected ErrInvalidRating, got %v", err)
		}
	})

	t.Run("Rate and add", func(t *testing.T) {
		w := newWatchlist(t)
		sel := NewSelection(w, nil)
		sel.Select("tt1375666")

		if sel.CanAdd() {
			t.Error("expected add to be unavailable before rating")
		}
		if _, err := sel.ConfirmAdd(inception()); !errors.Is(err, domain.ErrNotRated) {
			t.Fatalf("expected ErrNotRated, got %v", err)
		}

		sel.SetRating(8)
		if !sel.CanAdd() {
			t.Fatal("expected add to be available")
		}
		got, err := sel.ConfirmAdd(inception())
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}

		want := domain.WatchedEntry{
			ID:                  "tt1375666",
			Title:               "Inception",
			Year:                "2010",
			ExternalRating:      8.8,
			RuntimeMinutes:      148,
			UserRating:          8,
			RatingRevisionCount: 1,
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
		if entries := w.Entries(); len(entries) != 1 || entries[0] != want {
			t.Errorf("unexpected stored list %+v", entries)
		}
		if sel.State() != ViewBrowsing {
			t.Errorf("expected browsing after add, got %v", sel.State())
		}
	})

	t.Run("Watched movie cannot be added again", func(t *testing.T) {
		w := newWatchlist(t)
		sel := NewSelection(w, nil)
		sel.Select("tt1375666")
		sel.SetRating(8)
		sel.ConfirmAdd(inception())

		sel.Select("tt1375666")
		if !sel.IsWatched() {
			t.Fatal("expected movie to be watched")
		}
		if r, ok := sel.WatchedRating("tt1375666"); !ok || r != 8 {
			t.Errorf("expected stored rating 8, got %d %v", r, ok)
		}
		sel.SetRating(5)
		if sel.CanAdd() {
			t.Error("expected add to be unavailable")
		}
		if _, err := sel.ConfirmAdd(inception()); !errors.Is(err, domain.ErrAlreadyWatched) {
			t.Errorf("expected ErrAlreadyWatched, got %v", err)
		}
	})

	t.Run("Remove only while browsing", func(t *testing.T) {
		w := newWatchlist(t)
		w.Add(domain.WatchedEntry{ID: "a", Title: "A", UserRating: 5})
		sel := NewSelection(w, nil)

		sel.Select("b")
		if _, err := sel.Remove("a"); !errors.Is(err, domain.ErrNotBrowsing) {
			t.Errorf("expected ErrNotBrowsing, got %v", err)
		}

		sel.Close()
		removed, err := sel.Remove("a")
		if err != nil || !removed {
			t.Errorf("expected removal, got %v %v", removed, err)
		}
	})
}
