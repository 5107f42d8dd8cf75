package create_walk_in

import (
	"time"

	"github.com/google/uuid"

	createWalkIn "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_walk_in"
)

// CreateWalkInRequest HTTP request model
type CreateWalkInRequest struct {
	StaffID       string   `json:"staffId" validate:"required,uuid"`
	ServiceIDs    []string `json:"serviceIds" validate:"required,min=1,dive,uuid"`
	StartTime     string   `json:"startTime" validate:"required"`
	CustomerName  string   `json:"customerName" validate:"required"`
	CustomerPhone string   `json:"customerPhone" validate:"required"`
}

// WalkInResponse HTTP response model
type WalkInResponse struct {
	BookingID  string  `json:"bookingId"`
	ShopID     string  `json:"shopId"`
	StaffID    string  `json:"staffId"`
	Status     string  `json:"status"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	TotalPrice float64 `json:"totalPrice"`
	IsWalkIn   bool    `json:"isWalkIn"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateWalkInRequest) ToUseCaseRequest(actorShopID uuid.UUID) (*createWalkIn.Request, error) {
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

	return &createWalkIn.Request{
		ActorShopID:   actorShopID,
		StaffID:       staffID,
		ServiceIDs:    serviceIDs,
		StartTime:     start.UTC(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createWalkIn.Response) *WalkInResponse {
	return &WalkInResponse{
		BookingID:  resp.BookingID.String(),
		ShopID:     resp.ShopID.String(),
		StaffID:    resp.StaffID.String(),
		Status:     resp.Status,
		StartTime:  resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:    resp.EndTime.UTC().Format(time.RFC3339),
		TotalPrice: resp.TotalPrice,
		IsWalkIn:   true,
	}
}
