package get_shop_bookings

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	shopID uuid.UUID,
	actorShopID uuid.UUID,
	dateStr string,
	staffIDStr string,
	statusStr string,
) (*models.DailyCalendarRequest, error) {
	if dateStr == "" {
		return nil, errors.New("date is required")
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.DailyCalendarRequest{
		ShopID:      shopID,
		ActorShopID: actorShopID,
		Date:        date,
	}

	if staffIDStr != "" {
		staffID, err := uuid.Parse(staffIDStr)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	// статус проверяет сервис
	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
