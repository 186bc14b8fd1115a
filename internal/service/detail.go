package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DetailService fetches full metadata for one movie
type DetailService struct {
	repo   domain.MovieRepository
	logger *slog.Logger
}

// NewDetailService creates a new detail service
func NewDetailService(repo domain.MovieRepository, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailService{repo: repo, logger: logger}
}

// Detail returns the metadata for id.
// A "not found" payload and a network failure are both returned as errors;
// cancellation returns context.Canceled.
func (s *DetailService) Detail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	if id == "" {
		return nil, domain.ErrNoSelection
	}

	detail, err := s.repo.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, context.Canceled
		}
		return nil, err
	}
	return detail, nil
}
