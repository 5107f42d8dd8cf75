package replace_working_hours

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Replace(ctx context.Context, req *models.ReplaceRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
