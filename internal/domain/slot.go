package domain

import "time"

// TimeWindow is a half-open [Start, End) interval in UTC
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Overlaps returns true if the two half-open intervals intersect
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Slot is a candidate appointment interval
type Slot struct {
	Start time.Time
	End   time.Time
}

// DurationMinutes returns the slot length
func (s Slot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
