package create_payment_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	createPaymentOrder "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_payment_order"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotPending         = "бронирование уже не ожидает оплаты"
	msgHoldExpired        = "время удержания слота истекло"
	msgInvalidInput       = "бронирование нельзя оплатить"
	msgProviderError      = "платежный провайдер недоступен"
)

type Handler struct {
	useCase CreatePaymentOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentOrderRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /payments/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /payments/orders - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPaymentOrder.ErrBookingNotFound):
			h.logger.Warn("POST /payments/orders - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createPaymentOrder.ErrNotPending):
			h.logger.Warn("POST /payments/orders - Not pending: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, createPaymentOrder.ErrHoldExpired):
			h.logger.Warn("POST /payments/orders - Hold expired: booking_id=%s", req.BookingID)
			handlers.RespondGone(w, msgHoldExpired)

		case errors.Is(err, createPaymentOrder.ErrInvalidInput):
			h.logger.Warn("POST /payments/orders - Invalid input: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidInput)

		case errors.Is(err, createPaymentOrder.ErrPaymentProvider):
			h.logger.Error("POST /payments/orders - Provider error: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondBadGateway(w, msgProviderError)

		default:
			h.logger.Error("POST /payments/orders - Failed to create order: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/orders - Order created: booking_id=%s, order_id=%s", result.BookingID, result.OrderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
