package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

type BookingService interface {
	Transition(ctx context.Context, req *models.TransitionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
