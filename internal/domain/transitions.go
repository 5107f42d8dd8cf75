package domain

import "fmt"

// transitions legal staff-initiated moves keyed by current status.
// pending_payment -> confirmed is only reachable through hold confirmation.
var transitions = map[BookingStatus][]BookingStatus{
	StatusConfirmed: {StatusSeated, StatusCanceled, StatusNoShow},
	StatusSeated:    {StatusCompleted, StatusCanceled},
}

// IsTerminal returns true for statuses without outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusNoShow
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusSeated, StatusCompleted, StatusNoShow, StatusCanceled:
		return true
	}
	return false
}

// CanTransition reports whether a staff action may move a booking from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionError describes why a transition is not allowed
func TransitionError(from, to BookingStatus) string {
	switch {
	case from.IsTerminal():
		return fmt.Sprintf("%s bookings are read-only", from)
	case from == StatusPendingPayment:
		return fmt.Sprintf("pending_payment bookings must be confirmed before moving to %s", to)
	default:
		return fmt.Sprintf("cannot move %s booking to %s", from, to)
	}
}
