package store

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"meetsched/internal/model"

	"github.com/rs/zerolog"
)

// FileStore keeps the ledger in memory and rewrites a single JSON file
// on every append. The file is the whole persisted state; there is no
// partial-write recovery.
type FileStore struct {
	path   string
	logger *zerolog.Logger

	mu       sync.Mutex
	bookings []model.Booking
}

// OpenFile loads the ledger from path. A missing or unreadable file is a
// recoverable condition and yields an empty ledger.
func OpenFile(path string, logger *zerolog.Logger) *FileStore {
	s := &FileStore{path: path, logger: logger}
	s.load()
	return s
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("cannot read bookings file, starting empty")
		}
		return
	}

	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("bookings file malformed, starting empty")
		return
	}

	s.bookings = bookings
	s.logger.Info().Int("count", len(bookings)).Str("path", s.path).Msg("bookings loaded")
}

// Append adds the booking and rewrites the file. A write failure is
// logged and swallowed; the next successful write still carries every
// accumulated booking.
func (s *FileStore) Append(_ context.Context, b model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append(s.bookings, b)
	if err := s.flush(); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to persist bookings, in-memory ledger stays authoritative")
	}
	return nil
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.bookings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// All returns a copy of the ledger in insertion order.
func (s *FileStore) All() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}
