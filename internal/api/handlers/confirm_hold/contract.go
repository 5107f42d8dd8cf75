package confirm_hold

import (
	"context"

	confirmHold "github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
)

type ConfirmHoldUseCase interface {
	Execute(ctx context.Context, req *confirmHold.Request) (*confirmHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
