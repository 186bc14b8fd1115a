package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/popcorn/internal/domain"
)

// notAvailable is OMDb's placeholder for missing values
const notAvailable = "N/A"

// MapSearchItems converts search hits to domain summaries
func MapSearchItems(items []SearchItem) []domain.MovieSummary {
	out := make([]domain.MovieSummary, 0, len(items))
	for _, it := range items {
		if it.ImdbID == "" {
			continue
		}
		out = append(out, domain.MovieSummary{
			ID:        it.ImdbID,
			Title:     it.Title,
			Year:      it.Year,
			PosterURL: cleanValue(it.Poster),
		})
	}
	return out
}

// MapDetail converts a detail payload to a domain detail.
// requestedID backfills the identifier when the payload omits it.
func MapDetail(d DetailResponse, requestedID string) *domain.MovieDetail {
	id := d.ImdbID
	if id == "" {
		id = requestedID
	}
	return &domain.MovieDetail{
		ID:             id,
		Title:          d.Title,
		Year:           d.Year,
		PosterURL:      cleanValue(d.Poster),
		RuntimeMinutes: ParseRuntime(d.Runtime),
		ExternalRating: ParseRating(d.ImdbRating),
		Plot:           cleanValue(d.Plot),
		ReleaseDate:    cleanValue(d.Released),
		Actors:         cleanValue(d.Actors),
		Director:       cleanValue(d.Director),
		Genre:          cleanValue(d.Genre),
		Runtime:        cleanValue(d.Runtime),
	}
}

// ParseRuntime reads the leading number of a runtime like "148 min".
// Unknown values ("N/A", empty, garbage) give 0.
func ParseRuntime(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseRating reads an IMDb rating like "8.8". Unknown values give 0.
func ParseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == notAvailable {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
