package domain

import "fmt"

// MovieSummary is a single search hit
type MovieSummary struct {
	ID        string `json:"imdbID"` // IMDb identifier, e.g. "tt1375666"
	Title     string `json:"title"`
	Year      string `json:"year"` // Kept as text: OMDb returns ranges like "2011–2019" for series
	PosterURL string `json:"poster,omitempty"`
}

// MovieDetail holds the full metadata for one movie.
// It lives for a single detail session and is never persisted directly.
type MovieDetail struct {
	ID             string  `json:"imdbID"`
	Title          string  `json:"title"`
	Year           string  `json:"year"`
	PosterURL      string  `json:"poster,omitempty"`
	RuntimeMinutes int     `json:"runtimeMinutes"` // 0 when unknown
	ExternalRating float64 `json:"imdbRating"`     // IMDb rating on a 0-10 scale, 0 when unknown
	Plot           string  `json:"plot,omitempty"`
	ReleaseDate    string  `json:"released,omitempty"`
	Actors         string  `json:"actors,omitempty"`
	Director       string  `json:"director,omitempty"`
	Genre          string  `json:"genre,omitempty"`

	// Display-only runtime as reported by the API (e.g. "148 min")
	Runtime string `json:"runtime,omitempty"`
}

// Heading returns "Title (Year)"
func (d MovieDetail) Heading() string {
	if d.Year == "" {
		return d.Title
	}
	return fmt.Sprintf("%s (%s)", d.Title, d.Year)
}

// WatchedEntry is a rated movie in the watched list.
// Field names follow the browser client's storage format so lists can be
// exchanged with it.
type WatchedEntry struct {
	ID                  string  `json:"imdbID" toml:"imdbID"`
	Title               string  `json:"title" toml:"title"`
	Year                string  `json:"year" toml:"year"`
	PosterURL           string  `json:"poster" toml:"poster"`
	ExternalRating      float64 `json:"imdbRating" toml:"imdbRating"`
	RuntimeMinutes      int     `json:"runtime" toml:"runtime"`
	UserRating          int     `json:"userRating" toml:"userRating"`
	RatingRevisionCount int     `json:"countRatingDecisions" toml:"countRatingDecisions"`
}

// NewWatchedEntry builds the entry stored when a rating is confirmed
func NewWatchedEntry(d MovieDetail, userRating, revisions int) WatchedEntry {
	return WatchedEntry{
		ID:                  d.ID,
		Title:               d.Title,
		Year:                d.Year,
		PosterURL:           d.PosterURL,
		ExternalRating:      d.ExternalRating,
		RuntimeMinutes:      d.RuntimeMinutes,
		UserRating:          userRating,
		RatingRevisionCount: revisions,
	}
}

// WatchSummary aggregates the watched list
type WatchSummary struct {
	Count             int     `json:"count"`
	AvgExternalRating float64 `json:"avgImdbRating"`
	AvgUserRating     float64 `json:"avgUserRating"`
	AvgRuntimeMinutes float64 `json:"avgRuntime"`
}

// Rating bounds for user ratings
const (
	MinUserRating = 1
	MaxUserRating = 10
)
