package create_payment_order

import (
	"time"

	"github.com/google/uuid"

	createPaymentOrder "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_payment_order"
)

// CreatePaymentOrderRequest HTTP request model
type CreatePaymentOrderRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid"`
}

// PaymentOrderResponse HTTP response model
type PaymentOrderResponse struct {
	PaymentID string  `json:"paymentId"`
	OrderID   string  `json:"orderId"`
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	ExpiresAt string  `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePaymentOrderRequest) ToUseCaseRequest() (*createPaymentOrder.Request, error) {
	bookingID, err := uuid.Parse(r.BookingID)
	if err != nil {
		return nil, err
	}
	return &createPaymentOrder.Request{BookingID: bookingID}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPaymentOrder.Response) *PaymentOrderResponse {
	return &PaymentOrderResponse{
		PaymentID: resp.PaymentID.String(),
		OrderID:   resp.OrderID,
		BookingID: resp.BookingID.String(),
		Amount:    resp.Amount,
		Currency:  resp.Currency,
		ExpiresAt: resp.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
