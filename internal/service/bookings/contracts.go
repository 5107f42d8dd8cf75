package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/subscription"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByShop(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, now time.Time) error
}

// SubscriptionChecker интерфейс Subscription Gate
type SubscriptionChecker interface {
	CheckAccess(ctx context.Context, shopID uuid.UUID) (*subscription.Access, error)
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
