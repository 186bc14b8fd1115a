package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmcdole/popcorn/internal/domain"
)

// ViewState is the state of the selection controller
type ViewState int

const (
	ViewBrowsing ViewState = iota // no movie open
	ViewViewing                   // detail open
)

func (v ViewState) String() string {
	switch v {
	case ViewBrowsing:
		return "browsing"
	case ViewViewing:
		return "viewing"
	default:
		return "unknown"
	}
}

// Selection tracks which movie is open and mediates add/remove against the
// watched list. It is owned by the UI loop and is not safe for concurrent use.
type Selection struct {
	watchlist *WatchlistService
	logger    *slog.Logger

	selectedID string
	sessionID  string // log correlation for one detail session
	userRating int
	revisions  int
}

// NewSelection creates a controller in the Browsing state
func NewSelection(watchlist *WatchlistService, logger *slog.Logger) *Selection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selection{watchlist: watchlist, logger: logger}
}

// State returns the current view state
func (s *Selection) State() ViewState {
	if s.selectedID == "" {
		return ViewBrowsing
	}
	return ViewViewing
}

// SelectedID returns the open movie id, or "" while browsing
func (s *Selection) SelectedID() string { return s.selectedID }

// SessionID identifies the current detail session, or "" while browsing
func (s *Selection) SessionID() string { return s.sessionID }

// UserRating returns the pending rating of the open movie
func (s *Selection) UserRating() int { return s.userRating }

// Revisions returns how many nonzero rating changes this session has seen
func (s *Selection) Revisions() int { return s.revisions }

// Select toggles id: a different id opens a new detail session and returns
// true (the caller must fetch it); the already-open id closes the view and
// returns false.
func (s *Selection) Select(id string) bool {
	if id == "" || id == s.selectedID {
		s.Close()
		return false
	}

	s.selectedID = id
	s.sessionID = uuid.NewString()
	s.userRating = 0
	s.revisions = 0
	s.logger.Debug("detail session opened", "id", id, "session", s.sessionID)
	return true
}

// Close returns to Browsing from any state
func (s *Selection) Close() {
	if s.selectedID != "" {
		s.logger.Debug("detail session closed", "id", s.selectedID, "session", s.sessionID)
	}
	s.selectedID = ""
	s.sessionID = ""
	s.userRating = 0
	s.revisions = 0
}

// SetRating records a rating change event. Each change to a new nonzero
// value counts as one revision.
func (s *Selection) SetRating(rating int) error {
	if s.selectedID == "" {
		return domain.ErrNoSelection
	}
	if rating < 0 || rating > domain.MaxUserRating {
		return domain.ErrInvalidRating
	}
	if rating == s.userRating {
		return nil
	}
	s.userRating = rating
	if rating > 0 {
		s.revisions++
	}
	return nil
}

// IsWatched reports whether the open movie is already in the watched list
func (s *Selection) IsWatched() bool {
	return s.selectedID != "" && s.watchlist.Contains(s.selectedID)
}

// WatchedRating returns the stored rating of id when it is already watched
func (s *Selection) WatchedRating(id string) (int, bool) {
	e, ok := s.watchlist.Find(id)
	if !ok {
		return 0, false
	}
	return e.UserRating, true
}

// CanAdd reports whether ConfirmAdd would succeed
func (s *Selection) CanAdd() bool {
	return s.selectedID != "" && s.userRating > 0 && !s.IsWatched()
}

// ConfirmAdd stores the open movie with the pending rating and returns to
// Browsing. detail must describe the open movie.
func (s *Selection) ConfirmAdd(detail *domain.MovieDetail) (domain.WatchedEntry, error) {
	if s.selectedID == "" || detail == nil {
		return domain.WatchedEntry{}, domain.ErrNoSelection
	}
	if detail.ID != "" && detail.ID != s.selectedID {
		return domain.WatchedEntry{}, fmt.Errorf("detail %s does not match open movie %s: %w", detail.ID, s.selectedID, domain.ErrNoSelection)
	}
	if s.userRating <= 0 {
		return domain.WatchedEntry{}, domain.ErrNotRated
	}

	d := *detail
	d.ID = s.selectedID
	entry := domain.NewWatchedEntry(d, s.userRating, s.revisions)
	if err := s.watchlist.Add(entry); err != nil {
		return domain.WatchedEntry{}, err
	}

	s.logger.Debug("rating confirmed", "id", entry.ID, "session", s.sessionID, "revisions", entry.RatingRevisionCount)
	s.Close()
	return entry, nil
}

// Remove drops id from the watched list. Only valid while browsing;
// an absent id is a no-op.
func (s *Selection) Remove(id string) (bool, error) {
	if s.State() != ViewBrowsing {
		return false, domain.ErrNotBrowsing
	}
	return s.watchlist.Remove(id)
}

// isSkippable reports errors that make an import skip an entry
func isSkippable(err error) bool {
	return errors.Is(err, domain.ErrAlreadyWatched) ||
		errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, domain.ErrNoSelection)
}
