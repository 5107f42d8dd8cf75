package create_hold

import (
	"strings"
	"time"

	"github.com/google/uuid"

	createHold "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	StaffID       string   `json:"staffId" validate:"required,uuid"`
	ServiceIDs    []string `json:"serviceIds" validate:"required,min=1,dive,uuid"`
	StartTime     string   `json:"startTime" validate:"required"` // RFC 3339, например "2025-03-10T09:00:00Z"
	CustomerName  string   `json:"customerName,omitempty"`
	CustomerPhone string   `json:"customerPhone,omitempty"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	BookingID            string  `json:"bookingId"`
	ShopID               string  `json:"shopId"`
	StaffID              string  `json:"staffId"`
	Status               string  `json:"status"`
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	ExpiresAt            string  `json:"expiresAt"`
	TotalPrice           float64 `json:"totalPrice"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(idempotencyKey string) (*createHold.Request, error) {
	staffID, err := uuid.Parse(r.StaffID)
	if err != nil {
		return nil, err
	}

	serviceIDs := make([]uuid.UUID, 0, len(r.ServiceIDs))
	for _, s := range r.ServiceIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		serviceIDs = append(serviceIDs, id)
	}

	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createHold.Request{
		StaffID:       staffID,
		ServiceIDs:    serviceIDs,
		StartTime:     start.UTC(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		req.IdempotencyKey = &key
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		BookingID:            resp.BookingID.String(),
		ShopID:               resp.ShopID.String(),
		StaffID:              resp.StaffID.String(),
		Status:               "pending_payment",
		StartTime:            resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:              resp.EndTime.UTC().Format(time.RFC3339),
		ExpiresAt:            resp.ExpiresAt.UTC().Format(time.RFC3339),
		TotalPrice:           resp.TotalPrice,
		TotalDurationMinutes: resp.TotalDurationMinutes,
	}
}
