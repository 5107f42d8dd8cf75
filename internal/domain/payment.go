package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus state of a provider payment
type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// SettledFrom statuses a webhook may move a payment out of into s.
// A failed attempt can still be captured later on the same order.
func (s PaymentStatus) SettledFrom() []PaymentStatus {
	if s == PaymentPaid {
		return []PaymentStatus{PaymentCreated, PaymentFailed}
	}
	return []PaymentStatus{PaymentCreated}
}

// Payment mirrors an order at the external payment provider
type Payment struct {
	ID                uuid.UUID
	BookingID         *uuid.UUID
	ProviderOrderID   string
	ProviderPaymentID *string
	Amount            float64
	Currency          string
	Status            PaymentStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
