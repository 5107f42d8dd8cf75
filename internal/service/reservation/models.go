package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// Request запрос на резервирование окна мастера
type Request struct {
	StaffID    uuid.UUID
	ServiceIDs []uuid.UUID
	StartTime  time.Time
	ShopID     *uuid.UUID // магазин актора, если запись делает персонал
}

// Draft проверенное окно, готовое к вставке
type Draft struct {
	ShopID               uuid.UUID
	StaffID              uuid.UUID
	ServiceIDs           []uuid.UUID
	StartTime            time.Time
	EndTime              time.Time
	TotalPrice           float64
	TotalDurationMinutes int
}

// Booking собирает бронирование из черновика; первая услуга считается основной
func (d *Draft) Booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ShopID:               d.ShopID,
		StaffID:              d.StaffID,
		ServiceID:            d.ServiceIDs[0],
		ServiceIDs:           d.ServiceIDs,
		StartTime:            d.StartTime,
		EndTime:              d.EndTime,
		Status:               status,
		TotalPrice:           d.TotalPrice,
		TotalDurationMinutes: d.TotalDurationMinutes,
	}
}

// ServiceSet набор услуг одного бронирования
type ServiceSet struct {
	ShopID               uuid.UUID
	IDs                  []uuid.UUID
	TotalPrice           float64
	TotalDurationMinutes int
}
