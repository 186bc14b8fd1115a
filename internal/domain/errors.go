package domain

import "errors"

// Sentinel errors for remote lookups
var (
	// ErrNetwork indicates the request failed or the API answered with a non-success status
	ErrNetwork = errors.New("movie API request failed")

	// ErrNotFound indicates the API answered with an explicit negative result
	ErrNotFound = errors.New("movie not found")

	// ErrMalformedResponse indicates the payload could not be decoded
	ErrMalformedResponse = errors.New("malformed movie API response")
)

// Sentinel errors for watchlist operations
var (
	ErrNoSelection    = errors.New("no movie is open")
	ErrNotRated       = errors.New("movie has not been rated")
	ErrAlreadyWatched = errors.New("movie is already in the watched list")
	ErrNotBrowsing    = errors.New("close the open movie before removing entries")
	ErrInvalidRating  = errors.New("rating must be between 0 and 10")
)
