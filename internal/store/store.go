package store

import (
	"context"

	"meetsched/internal/model"
)

// Store is the booking ledger: an ordered, append-only record sequence.
type Store interface {
	// Append adds a booking to the ledger. Persistence failures are a
	// durability delay, not an error; the in-memory ledger stays
	// authoritative.
	Append(ctx context.Context, b model.Booking) error

	// All returns a snapshot of the ledger in insertion order.
	All() []model.Booking
}
