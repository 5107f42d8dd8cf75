package confirm_hold

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на подтверждение холда
type Request struct {
	BookingID     uuid.UUID
	CustomerName  string
	CustomerPhone string
	Payment       *PaymentRefs // опционально
}

// PaymentRefs ссылки на оплату у провайдера
type PaymentRefs struct {
	ProviderOrderID   string
	ProviderPaymentID *string
	Amount            float64
	Currency          string
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	BookingID uuid.UUID
	ShopID    uuid.UUID
	StaffID   uuid.UUID
	Status    string
	StartTime time.Time
	EndTime   time.Time
}
