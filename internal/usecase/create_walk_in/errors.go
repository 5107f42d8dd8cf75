package create_walk_in

import "github.com/m04kA/SMC-ShopBooking/internal/service/reservation"

var (
	ErrInvalidInput         = reservation.ErrInvalidInput
	ErrServiceNotFound      = reservation.ErrServiceNotFound
	ErrStaffNotFound        = reservation.ErrStaffNotFound
	ErrStaffOnLeave         = reservation.ErrStaffOnLeave
	ErrOutsideWorkingHours  = reservation.ErrOutsideWorkingHours
	ErrAccessDenied         = reservation.ErrAccessDenied
	ErrSubscriptionInactive = reservation.ErrSubscriptionInactive
	ErrSlotNotAvailable     = reservation.ErrSlotNotAvailable
	ErrInternal             = reservation.ErrInternal
)
