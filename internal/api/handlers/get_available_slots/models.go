package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // ISO 8601 UTC
	EndTime   string `json:"endTime"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ShopID          string         `json:"shopId"`
	StaffID         string         `json:"staffId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.Start.UTC().Format(time.RFC3339),
			EndTime:   s.End.UTC().Format(time.RFC3339),
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ShopID:          resp.ShopID.String(),
		StaffID:         resp.StaffID.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
