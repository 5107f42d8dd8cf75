package handle_payment_webhook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
)

// EventParser интерфейс проверки подписи и разбора вебхука
type EventParser interface {
	ParseEvent(body []byte, signature string) (*paymentprovider.Event, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByProviderOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	MarkSettled(ctx context.Context, orderID string, status domain.PaymentStatus, providerPaymentID *string, now time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// HoldConfirmer интерфейс подтверждения холда
type HoldConfirmer interface {
	Execute(ctx context.Context, req *confirm_hold.Request) (*confirm_hold.Response, error)
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
