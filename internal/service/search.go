package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/popcorn/internal/domain"
)

// SearchErrorMessage is the one user-facing message for any failed search.
// Network failures, negative results and garbage payloads all look alike.
const SearchErrorMessage = "Something went wrong while fetching movies. Try again later!"

// DefaultMinQueryLength is used when no minimum is configured
const DefaultMinQueryLength = 3

// SearchError wraps the cause of a failed search behind the fixed message
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string { return SearchErrorMessage }

func (e *SearchError) Unwrap() error { return e.Err }

// SearchService turns free-text queries into movie summaries
type SearchService struct {
	repo     domain.MovieRepository
	logger   *slog.Logger
	minLen   int
	rankHits bool
}

// SearchOption configures a SearchService
type SearchOption func(*SearchService)

// WithMinQueryLength sets the shortest trimmed query that reaches the network
func WithMinQueryLength(n int) SearchOption {
	return func(s *SearchService) {
		if n >= 0 {
			s.minLen = n
		}
	}
}

// WithRanking enables local fuzzy ranking of remote results
func WithRanking(enabled bool) SearchOption {
	return func(s *SearchService) {
		s.rankHits = enabled
	}
}

// NewSearchService creates a new search service
func NewSearchService(repo domain.MovieRepository, logger *slog.Logger, opts ...SearchOption) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SearchService{
		repo:   repo,
		logger: logger,
		minLen: DefaultMinQueryLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShouldQuery reports whether query is long enough to reach the network
func (s *SearchService) ShouldQuery(query string) bool {
	q := strings.TrimSpace(query)
	return q != "" && len([]rune(q)) >= s.minLen
}

// Search returns the movies matching query.
// Short queries return an empty result without touching the network.
// Cancellation returns ctx.Err() unchanged; every other failure is a *SearchError.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	if !s.ShouldQuery(query) {
		return nil, nil
	}
	query = strings.TrimSpace(query)

	s.logger.Debug("searching", "query", query)

	results, err := s.repo.Search(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			s.logger.Debug("search cancelled", "query", query)
			return nil, context.Canceled
		}
		s.logger.Warn("search failed", "query", query, "error", err)
		return nil, &SearchError{Query: query, Err: err}
	}

	if s.rankHits {
		results = rankResults(results, query)
	}
	s.logger.Debug("search complete", "query", query, "results", len(results))

	return results, nil
}

// rankResults orders results by how closely their title matches query.
// The sort is stable so ties keep the API order.
func rankResults(items []domain.MovieSummary, query string) []domain.MovieSummary {
	if len(items) < 2 {
		return items
	}

	query = strings.ToLower(query)

	type rankedItem struct {
		item  domain.MovieSummary
		score int
	}

	ranked := make([]rankedItem, len(items))
	for i, item := range items {
		ranked[i] = rankedItem{item: item, score: matchScore(strings.ToLower(item.Title), query)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.MovieSummary, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// matchScore: lower is better
func matchScore(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	case fuzzy.MatchFold(query, title):
		return 75
	}
	return 100 + fuzzy.LevenshteinDistance(query, title)
}
