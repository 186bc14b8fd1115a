package service

import "github.com/mmcdole/popcorn/internal/domain"

// Summarize computes the watched-list statistics
func Summarize(entries []domain.WatchedEntry) domain.WatchSummary {
	external := make([]float64, len(entries))
	user := make([]float64, len(entries))
	runtime := make([]float64, len(entries))
	for i, e := range entries {
		external[i] = e.ExternalRating
		user[i] = float64(e.UserRating)
		runtime[i] = float64(e.RuntimeMinutes)
	}

	return domain.WatchSummary{
		Count:             len(entries),
		AvgExternalRating: average(external),
		AvgUserRating:     average(user),
		AvgRuntimeMinutes: average(runtime),
	}
}

// average sums running fractions (acc + x/n), so an empty input is exactly 0
func average(values []float64) float64 {
	var acc float64
	n := float64(len(values))
	for _, v := range values {
		acc += v / n
	}
	return acc
}
