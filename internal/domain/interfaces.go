package domain

import "context"

// MovieRepository is the remote movie-metadata source.
// Implementations must honor ctx cancellation and return ctx.Err() untouched
// when the request was cancelled.
type MovieRepository interface {
	Search(ctx context.Context, query string) ([]MovieSummary, error)
	Detail(ctx context.Context, id string) (*MovieDetail, error)
}

// WatchlistStore persists the watched list
type WatchlistStore interface {
	LoadWatched() []WatchedEntry
	SaveWatched(entries []WatchedEntry) error
}
