package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// DayHours рабочие часы на день недели (0 = воскресенье). Время "HH:MM" или "HH:MM:SS" в UTC.
type DayHours struct {
	DayOfWeek int     `json:"dayOfWeek" validate:"min=0,max=6"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	IsClosed  bool    `json:"isClosed"`
}

// ReplaceRequest запрос на замену недели целиком
type ReplaceRequest struct {
	ShopID      uuid.UUID
	ActorShopID uuid.UUID
	Days        []DayHours
}

// WeekResponse рабочие часы на все 7 дней, отсутствующий день закрыт
type WeekResponse struct {
	ShopID string     `json:"shopId"`
	Days   []DayHours `json:"days"`
}

// FromDomainWeek конвертирует строки БД в полную неделю
func FromDomainWeek(shopID uuid.UUID, rows []*domain.WorkingHours) *WeekResponse {
	byDay := make(map[int]*domain.WorkingHours, len(rows))
	for _, wh := range rows {
		byDay[wh.DayOfWeek] = wh
	}

	resp := &WeekResponse{ShopID: shopID.String(), Days: make([]DayHours, 7)}
	for day := 0; day < 7; day++ {
		wh, ok := byDay[day]
		if !ok || !wh.IsOpen() {
			resp.Days[day] = DayHours{DayOfWeek: day, IsClosed: true}
			continue
		}
		open, closeAt := wh.OpenTime.String(), wh.CloseTime.String()
		resp.Days[day] = DayHours{DayOfWeek: day, OpenTime: &open, CloseTime: &closeAt}
	}
	return resp
}
