package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// WorkingHours opening hours of a shop for one weekday (0 = Sunday), in UTC.
// A missing row means the shop is closed that day.
type WorkingHours struct {
	ShopID    uuid.UUID
	DayOfWeek int
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	IsClosed  bool
	UpdatedAt time.Time
}

// IsOpen returns true if the shop accepts bookings on this day
func (w *WorkingHours) IsOpen() bool {
	if w == nil || w.IsClosed || w.OpenTime == nil || w.CloseTime == nil {
		return false
	}
	return !w.OpenTime.IsZero() && !w.CloseTime.IsZero()
}

// Window returns the opening window anchored to the given date
func (w *WorkingHours) Window(date time.Time) (TimeWindow, bool) {
	if !w.IsOpen() {
		return TimeWindow{}, false
	}
	open, err := w.OpenTime.On(date)
	if err != nil {
		return TimeWindow{}, false
	}
	closeAt, err := w.CloseTime.On(date)
	if err != nil || !open.Before(closeAt) {
		return TimeWindow{}, false
	}
	return TimeWindow{Start: open, End: closeAt}, true
}

// Contains returns true if the interval lies fully inside the opening window of its day
func (w *WorkingHours) Contains(start, end time.Time) bool {
	window, ok := w.Window(start)
	if !ok {
		return false
	}
	return !start.Before(window.Start) && !end.After(window.End)
}
