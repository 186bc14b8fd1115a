package service

import (
	"context"
	"testing"
)

func TestSlot(t *testing.T) {
	t.Run("Newest request wins", func(t *testing.T) {
		s := NewSlot()
		ctx1, seq1 := s.Begin(context.Background())
		ctx2, seq2 := s.Begin(context.Background())

		if ctx1.Err() == nil {
			t.Error("expected first request to be cancelled")
		}
		if ctx2.Err() != nil {
			t.Error("expected second request to be live")
		}
		if s.Current(seq1) {
			t.Error("expected first sequence to be stale")
		}
		if !s.Current(seq2) {
			t.Error("expected second sequence to be current")
		}
	})

	t.Run("Cancel invalidates the current request", func(t *testing.T) {
		s := NewSlot()
		ctx, seq := s.Begin(context.Background())
		s.Cancel()

		if ctx.Err() == nil {
			t.Error("expected context to be cancelled")
		}
		if s.Current(seq) {
			t.Error("expected sequence to be stale after Cancel")
		}
	})

	t.Run("Done releases the context", func(t *testing.T) {
		s := NewSlot()
		ctx, seq := s.Begin(context.Background())
		s.Done(seq)

		if ctx.Err() == nil {
			t.Error("expected context to be released")
		}
		if s.Current(seq) {
			t.Error("expected finished sequence to no longer be current")
		}
	})

	t.Run("Done with a stale sequence leaves the newest alone", func(t *testing.T) {
		s := NewSlot()
		_, seq1 := s.Begin(context.Background())
		ctx2, seq2 := s.Begin(context.Background())
		s.Done(seq1)

		if ctx2.Err() != nil {
			t.Error("expected newest request to stay live")
		}
		if !s.Current(seq2) {
			t.Error("expected newest sequence to remain current")
		}
	})
}
