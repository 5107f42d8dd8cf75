package create_payment_order

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание заказа оплаты холда
type Request struct {
	BookingID uuid.UUID
}

// Response модель ответа с заказом провайдера
type Response struct {
	PaymentID uuid.UUID
	OrderID   string
	BookingID uuid.UUID
	Amount    float64
	Currency  string
	ExpiresAt time.Time // оплатить нужно до истечения холда
}
