package schedule

import (
	"time"

	"meetsched/internal/model"
)

// BookingSource exposes the current ledger for overlap checks.
type BookingSource interface {
	All() []model.Booking
}

// Detector answers whether a proposed interval is free of conflicts with
// existing non-cancelled bookings. A linear scan is fine at the scale of
// a single personal calendar.
type Detector struct {
	source BookingSource
}

func NewDetector(source BookingSource) *Detector {
	return &Detector{source: source}
}

// IsAvailable reports whether [start, start+duration) anchored at the
// fixed offset overlaps no existing non-cancelled booking. Intervals
// that merely touch do not conflict.
func (d *Detector) IsAvailable(date, timeOfDay string, durationMinutes int) (bool, error) {
	start, err := model.StartAt(date, timeOfDay)
	if err != nil {
		return false, err
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	for _, b := range d.source.All() {
		if b.Status == model.StatusCancelled {
			continue
		}
		existingStart, existingEnd, err := b.Interval()
		if err != nil {
			// A hand-edited record that no longer parses cannot conflict.
			continue
		}
		if model.Overlaps(start, end, existingStart, existingEnd) {
			return false, nil
		}
	}

	return true, nil
}
