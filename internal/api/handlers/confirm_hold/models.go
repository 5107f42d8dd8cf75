package confirm_hold

import (
	"time"

	"github.com/google/uuid"

	confirmHold "github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
)

// ConfirmHoldRequest HTTP request model
type ConfirmHoldRequest struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerPhone string `json:"customerPhone" validate:"required"`
}

// ConfirmedBookingResponse HTTP response model
type ConfirmedBookingResponse struct {
	BookingID string `json:"bookingId"`
	ShopID    string `json:"shopId"`
	StaffID   string `json:"staffId"`
	Status    string `json:"status"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmHoldRequest) ToUseCaseRequest(bookingID uuid.UUID) *confirmHold.Request {
	return &confirmHold.Request{
		BookingID:     bookingID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmHold.Response) *ConfirmedBookingResponse {
	return &ConfirmedBookingResponse{
		BookingID: resp.BookingID.String(),
		ShopID:    resp.ShopID.String(),
		StaffID:   resp.StaffID.String(),
		Status:    resp.Status,
		StartTime: resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:   resp.EndTime.UTC().Format(time.RFC3339),
	}
}
