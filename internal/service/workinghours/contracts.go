package workinghours

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByShop(ctx context.Context, shopID uuid.UUID) ([]*domain.WorkingHours, error)
	ReplaceForShop(ctx context.Context, shopID uuid.UUID, week []*domain.WorkingHours) error
}

// ShopRepository интерфейс репозитория магазинов
type ShopRepository interface {
	GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
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
