package create_walk_in

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
)

// Reservations интерфейс проверки предусловий и вставки бронирования
type Reservations interface {
	Prepare(ctx context.Context, req *reservation.Request, now time.Time) (*reservation.Draft, error)
	Insert(ctx context.Context, booking *domain.Booking, now time.Time) (*domain.Booking, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics интерфейс счетчиков операций
type Metrics interface {
	IncBookingOperation(operation, result string)
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
