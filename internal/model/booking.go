package model

import "time"

// Booking status values. Cancelled bookings are skipped by the conflict
// detector; nothing in the service writes the cancelled status yet, it
// only appears when the bookings file is edited by hand.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// AnchorZone is the fixed offset all interval math is anchored to. The
// timezone field on a booking is display-only; resolving date+time here
// keeps overlap checks consistent no matter what name the record carries.
var AnchorZone = time.FixedZone("+05:45", 5*3600+45*60)

// Booking is the persisted meeting record.
type Booking struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Purpose       string `json:"purpose"`
	Date          string `json:"date"`     // YYYY-MM-DD
	Time          string `json:"time"`     // HH:MM, 24-hour
	Duration      int    `json:"duration"` // minutes
	Status        string `json:"status"`
	Timezone      string `json:"timezone"`
	JoinURL       string `json:"joinUrl"`
	Password      string `json:"password"`
	ZoomMeetingID string `json:"zoomMeetingId"`
	CreatedAt     string `json:"createdAt"` // RFC3339, UTC
}

// StartAt resolves a calendar date and time-of-day to the anchor instant
// used for all interval math.
func StartAt(date, timeOfDay string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, AnchorZone)
}

// Interval returns the half-open [start, end) window of the booking.
func (b *Booking) Interval() (start, end time.Time, err error) {
	start, err = StartAt(b.Date, b.Time)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(time.Duration(b.Duration) * time.Minute), nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not count, so back-to-back bookings are allowed.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
