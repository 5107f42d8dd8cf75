package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Checker источник решений о доступе
type Checker interface {
	CheckAccess(ctx context.Context, shopID uuid.UUID) (*Access, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
