package service

import (
	"context"
	"sync"
)

// Slot scopes a cancellation token to one logical request slot (the search
// query, the open detail id). Starting a new request cancels the previous
// one, and only the newest sequence number is considered current.
type Slot struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewSlot creates an idle slot
func NewSlot() *Slot {
	return &Slot{}
}

// Begin cancels any in-flight request and returns the context and sequence
// number for the next one
func (s *Slot) Begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.seq++
	return ctx, s.seq
}

// Cancel aborts the in-flight request and invalidates its sequence number
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}

// Current reports whether seq belongs to the newest request
func (s *Slot) Current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq && s.cancel != nil
}

// Done releases the context of seq once its result has been applied
func (s *Slot) Done(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
