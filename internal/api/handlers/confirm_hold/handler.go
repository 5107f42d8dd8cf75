package confirm_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	confirmHold "github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса, нужны имя и телефон клиента"
	msgInvalidInput       = "некорректные данные клиента"
	msgNotFound           = "бронирование не найдено"
	msgNotPending         = "бронирование уже не ожидает оплаты"
	msgHoldExpired        = "время удержания слота истекло"
)

type Handler struct {
	useCase ConfirmHoldUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmHoldRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, confirmHold.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmHold.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/confirm - Not pending: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, confirmHold.ErrHoldExpired):
			h.logger.Warn("POST /bookings/{id}/confirm - Hold expired: booking_id=%s", bookingID)
			handlers.RespondGone(w, msgHoldExpired)

		case errors.Is(err, confirmHold.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%s, staff_id=%s",
		result.BookingID, result.StaffID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
