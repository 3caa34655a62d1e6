package store

import (
	"context"
	"sync"

	"meetsched/internal/model"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu       sync.Mutex
	bookings []model.Booking
}

func NewMem() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Append(_ context.Context, b model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
	return nil
}

func (s *MemStore) All() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}
