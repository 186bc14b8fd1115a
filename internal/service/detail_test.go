package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/omdb"
	tu "github.com/mmcdole/popcorn/internal/testing"
)

func TestDetailService(t *testing.T) {
	srv := tu.NewFakeOMDb(t)
	svc := NewDetailService(omdb.NewClient(srv.URL, "key", nil), nil)

	t.Run("Fetches detail", func(t *testing.T) {
		d, err := svc.Detail(context.Background(), tu.InceptionID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.Title != "Inception" || d.RuntimeMinutes != 148 {
			t.Errorf("unexpected detail %+v", d)
		}
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		_, err := svc.Detail(context.Background(), "tt0000001")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Empty id", func(t *testing.T) {
		before := srv.Calls()
		_, err := svc.Detail(context.Background(), "")
		if !errors.Is(err, domain.ErrNoSelection) {
			t.Errorf("expected ErrNoSelection, got %v", err)
		}
		if srv.Calls() != before {
			t.Error("expected no request for an empty id")
		}
	})
}
