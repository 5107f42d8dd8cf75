package create_payment_order

import (
	"context"

	createPaymentOrder "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_payment_order"
)

type CreatePaymentOrderUseCase interface {
	Execute(ctx context.Context, req *createPaymentOrder.Request) (*createPaymentOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
