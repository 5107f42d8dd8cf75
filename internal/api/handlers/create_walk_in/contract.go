package create_walk_in

import (
	"context"

	createWalkIn "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_walk_in"
)

type CreateWalkInUseCase interface {
	Execute(ctx context.Context, req *createWalkIn.Request) (*createWalkIn.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
