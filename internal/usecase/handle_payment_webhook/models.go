package handle_payment_webhook

import "github.com/google/uuid"

// Request тело и подпись вебхука как пришли от провайдера
type Request struct {
	Body      []byte
	Signature string
}

// Response результат обработки события
type Response struct {
	OrderID          string
	PaymentStatus    string
	BookingID        *uuid.UUID
	BookingConfirmed bool
	Duplicate        bool // событие уже было обработано
}
