package service

import (
	"math"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
)

func TestSummarize(t *testing.T) {
	t.Run("Empty list is all zeros", func(t *testing.T) {
		got := Summarize(nil)
		if got != (domain.WatchSummary{}) {
			t.Errorf("expected zero summary, got %+v", got)
		}
	})

	t.Run("Averages", func(t *testing.T) {
		got := Summarize([]domain.WatchedEntry{
			{ID: "a", ExternalRating: 8.8, UserRating: 8, RuntimeMinutes: 148},
			{ID: "b", ExternalRating: 7.0, UserRating: 5, RuntimeMinutes: 100},
		})
		if got.Count != 2 {
			t.Errorf("expected count 2, got %d", got.Count)
		}
		if math.Abs(got.AvgExternalRating-7.9) > 1e-9 {
			t.Errorf("expected external 7.9, got %v", got.AvgExternalRating)
		}
		if got.AvgUserRating != 6.5 {
			t.Errorf("expected user 6.5, got %v", got.AvgUserRating)
		}
		if got.AvgRuntimeMinutes != 124 {
			t.Errorf("expected runtime 124, got %v", got.AvgRuntimeMinutes)
		}
	})

	t.Run("Unknown values count as zero", func(t *testing.T) {
		got := Summarize([]domain.WatchedEntry{
			{ID: "a", UserRating: 6, RuntimeMinutes: 120},
			{ID: "b", UserRating: 4},
		})
		if got.AvgRuntimeMinutes != 60 {
			t.Errorf("expected runtime 60, got %v", got.AvgRuntimeMinutes)
		}
		if got.AvgExternalRating != 0 {
			t.Errorf("expected external 0, got %v", got.AvgExternalRating)
		}
	})
}
