package domain

import "time"

// Booking core constants
const (
	SlotStepMinutes = 15
	HoldDuration    = 10 * time.Minute

	// ConflictLookback widens the start_time range of conflict queries, no booking is longer
	ConflictLookback = 24 * time.Hour

	MaxServicesPerBooking = 10
	MaxCustomerNameLength = 200
	MaxCustomerPhoneLen   = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that always occupy their window
var BlockingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusSeated,
	StatusCompleted,
}

// CalendarStatuses statuses shown in the daily calendar
var CalendarStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusSeated,
	StatusCompleted,
	StatusNoShow,
}
