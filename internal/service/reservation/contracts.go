package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/subscription"
	"github.com/m04kA/SMC-ShopBooking/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ReleaseExpiredHolds(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (int64, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ShopRepository интерфейс репозитория магазинов, мастеров и услуг
type ShopRepository interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByShopAndDay(ctx context.Context, shopID uuid.UUID, dayOfWeek int) (*domain.WorkingHours, error)
}

// SubscriptionChecker интерфейс Subscription Gate
type SubscriptionChecker interface {
	CheckAccess(ctx context.Context, shopID uuid.UUID) (*subscription.Access, error)
}

// AvailabilityChecker интерфейс проверки пересечений
type AvailabilityChecker interface {
	CheckAt(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (*availability.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
