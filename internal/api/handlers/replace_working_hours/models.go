package replace_working_hours

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/service/workinghours/models"
)

// DayHoursRequest рабочие часы на день недели (0 = воскресенье)
type DayHoursRequest struct {
	DayOfWeek int     `json:"dayOfWeek" validate:"min=0,max=6"`
	OpenTime  *string `json:"openTime,omitempty" validate:"omitempty,timeofday"`
	CloseTime *string `json:"closeTime,omitempty" validate:"omitempty,timeofday"`
	IsClosed  bool    `json:"isClosed"`
}

// ReplaceWorkingHoursRequest HTTP request model, неделя заменяется целиком
type ReplaceWorkingHoursRequest struct {
	Days []DayHoursRequest `json:"days" validate:"max=7,dive"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ReplaceWorkingHoursRequest) ToServiceRequest(shopID, actorShopID uuid.UUID) *models.ReplaceRequest {
	days := make([]models.DayHours, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, models.DayHours{
			DayOfWeek: d.DayOfWeek,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			IsClosed:  d.IsClosed,
		})
	}

	return &models.ReplaceRequest{
		ShopID:      shopID,
		ActorShopID: actorShopID,
		Days:        days,
	}
}
