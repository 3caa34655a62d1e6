package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rules holds the operating-hour policy. Bookings may start at
// MinStartHour and must start before MaxEndHour.
type Rules struct {
	MinStartHour int
	MaxEndHour   int
}

// Saturdays are a hard blackout day.
const blackoutWeekday = time.Saturday

// Window validates a requested date and time-of-day against the booking
// policy. The first failing rule wins and its reason is surfaced to the
// caller verbatim.
type Window struct {
	rules Rules
	now   func() time.Time
}

func NewWindow(rules Rules) *Window {
	return &Window{rules: rules, now: time.Now}
}

// Check applies the policy rules in order: no past dates, no blackout
// day, well-formed time, within operating hours.
func (w *Window) Check(date, timeOfDay string) error {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}

	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return fmt.Errorf("cannot book a meeting on a past date")
	}

	if day.Weekday() == blackoutWeekday {
		return fmt.Errorf("meetings are not available on Saturdays")
	}

	hour, _, err := ParseClock(timeOfDay)
	if err != nil {
		return err
	}

	if hour < w.rules.MinStartHour {
		return fmt.Errorf("time is before the opening hour %02d:00", w.rules.MinStartHour)
	}
	if hour >= w.rules.MaxEndHour {
		return fmt.Errorf("time is at or after the closing hour %02d:00", w.rules.MaxEndHour)
	}

	return nil
}

// ParseClock parses a strict HH:MM string: exactly two numeric
// components, hour 0-23, minute 0-59.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time, expected HH:MM")
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time, expected HH:MM")
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time, expected HH:MM")
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time, expected HH:MM")
	}

	return hour, minute, nil
}
