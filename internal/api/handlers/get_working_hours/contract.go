package get_working_hours

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Get(ctx context.Context, shopID uuid.UUID) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
