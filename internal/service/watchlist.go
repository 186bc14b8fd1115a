package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/sahilm/fuzzy"
)

// WatchlistService mediates every read and write of the watched list.
// It keeps no copy of its own: the store is the single source of truth.
type WatchlistService struct {
	store  domain.WatchlistStore
	logger *slog.Logger
	mu     sync.Mutex // serializes read-modify-write cycles
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(store domain.WatchlistStore, logger *slog.Logger) *WatchlistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WatchlistService{store: store, logger: logger}
}

// Entries returns the watched list in insertion order
func (s *WatchlistService) Entries() []domain.WatchedEntry {
	return s.store.LoadWatched()
}

// Find returns the entry with id
func (s *WatchlistService) Find(id string) (domain.WatchedEntry, bool) {
	for _, e := range s.store.LoadWatched() {
		if e.ID == id {
			return e, true
		}
	}
	return domain.WatchedEntry{}, false
}

// Contains reports whether id is already watched
func (s *WatchlistService) Contains(id string) bool {
	_, ok := s.Find(id)
	return ok
}

// Add appends entry unless its id is already present
func (s *WatchlistService) Add(entry domain.WatchedEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("add watched entry: %w", domain.ErrNoSelection)
	}
	if entry.UserRating < domain.MinUserRating || entry.UserRating > domain.MaxUserRating {
		return fmt.Errorf("add %s: %w", entry.ID, domain.ErrInvalidRating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.LoadWatched()
	for _, e := range entries {
		if e.ID == entry.ID {
			return fmt.Errorf("add %s: %w", entry.ID, domain.ErrAlreadyWatched)
		}
	}

	updated := make([]domain.WatchedEntry, 0, len(entries)+1)
	updated = append(updated, entries...)
	updated = append(updated, entry)
	if err := s.store.SaveWatched(updated); err != nil {
		return fmt.Errorf("save watched list: %w", err)
	}

	s.logger.Info("added to watched", "id", entry.ID, "title", entry.Title, "rating", entry.UserRating)
	return nil
}

// Remove drops every entry with id. An absent id is a no-op and reports false.
func (s *WatchlistService) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.LoadWatched()
	kept := make([]domain.WatchedEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return false, nil
	}

	if err := s.store.SaveWatched(kept); err != nil {
		return false, fmt.Errorf("save watched list: %w", err)
	}
	s.logger.Info("removed from watched", "id", id)
	return true, nil
}

// Import adds every entry whose id is not yet present and returns how many were added
func (s *WatchlistService) Import(entries []domain.WatchedEntry) (int, error) {
	added := 0
	for _, e := range entries {
		err := s.Add(e)
		switch {
		case err == nil:
			added++
		case isSkippable(err):
			s.logger.Debug("skipping imported entry", "id", e.ID, "error", err)
		default:
			return added, err
		}
	}
	return added, nil
}

// Summary aggregates the current list
func (s *WatchlistService) Summary() domain.WatchSummary {
	return Summarize(s.store.LoadWatched())
}

// FilterResult is a watched entry matched by a filter query
type FilterResult struct {
	Entry          domain.WatchedEntry
	MatchedIndexes []int // byte offsets into Entry.Title that matched
}

// watchedIndex implements sahilm/fuzzy.Source over lowercased entry titles.
// origin maps each byte offset of a lowered title back to the title itself.
type watchedIndex struct {
	entries     []domain.WatchedEntry
	lowerTitles []string
	origin      [][]int
}

func (idx watchedIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx watchedIndex) Len() int { return len(idx.entries) }

// lowerWithOrigin lowercases s rune by rune. Lowercasing can change a rune's
// encoded length (K, İ), so offsets into the result are recorded against s.
func lowerWithOrigin(s string) (string, []int) {
	var b strings.Builder
	origin := make([]int, 0, len(s))
	for i, r := range s {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			origin = append(origin, i)
		}
		b.WriteRune(lr)
	}
	return b.String(), origin
}

// Filter fuzzy-matches titles against query, best match first.
// An empty query returns every entry in list order.
func (s *WatchlistService) Filter(query string) []FilterResult {
	entries := s.store.LoadWatched()
	query = strings.ToLower(strings.TrimSpace(query))

	if query == "" {
		results := make([]FilterResult, len(entries))
		for i, e := range entries {
			results[i] = FilterResult{Entry: e}
		}
		return results
	}

	idx := watchedIndex{
		entries:     entries,
		lowerTitles: make([]string, len(entries)),
		origin:      make([][]int, len(entries)),
	}
	for i, e := range entries {
		idx.lowerTitles[i], idx.origin[i] = lowerWithOrigin(e.Title)
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]FilterResult, len(matches))
	for i, m := range matches {
		origin := idx.origin[m.Index]
		matched := make([]int, 0, len(m.MatchedIndexes))
		for _, off := range m.MatchedIndexes {
			if off >= 0 && off < len(origin) {
				matched = append(matched, origin[off])
			}
		}
		results[i] = FilterResult{Entry: entries[m.Index], MatchedIndexes: matched}
	}
	return results
}
