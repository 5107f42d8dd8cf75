package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
)

// Reservations интерфейс проверок услуг, мастера и рабочих часов
type Reservations interface {
	LoadServices(ctx context.Context, ids []uuid.UUID) (*reservation.ServiceSet, error)
	LoadStaff(ctx context.Context, staffID, shopID uuid.UUID) (*domain.Staff, error)
	WorkingHoursFor(ctx context.Context, shopID uuid.UUID, date time.Time) (*domain.WorkingHours, error)
}

// LiveWindowsProvider интерфейс получения занятых окон мастера
type LiveWindowsProvider interface {
	LiveWindows(ctx context.Context, staffID uuid.UUID, from, to, now time.Time) ([]domain.TimeWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
