package schedule

import "fmt"

// slotProbeMinutes is the fixed grid granularity. Availability is always
// probed for a single 30-minute slot, so a listed slot does not
// guarantee that a longer booking starting there will succeed.
const slotProbeMinutes = 30

// Enumerator generates the bookable slots of a day by probing the
// conflict detector across the 30-minute grid.
type Enumerator struct {
	rules    Rules
	detector *Detector
}

func NewEnumerator(rules Rules, detector *Detector) *Enumerator {
	return &Enumerator{rules: rules, detector: detector}
}

// Available returns the free HH:MM slots for the date, in grid order.
func (e *Enumerator) Available(date string) ([]string, error) {
	var slots []string
	for hour := e.rules.MinStartHour; hour < e.rules.MaxEndHour; hour++ {
		for _, minute := range []int{0, 30} {
			slot := fmt.Sprintf("%02d:%02d", hour, minute)
			free, err := e.detector.IsAvailable(date, slot, slotProbeMinutes)
			if err != nil {
				return nil, fmt.Errorf("probe slot %s: %w", slot, err)
			}
			if free {
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}
