package get_shop_bookings

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetDailyCalendar(ctx context.Context, req *models.DailyCalendarRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
