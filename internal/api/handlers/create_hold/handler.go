package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	createHold "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_hold"
)

// HeaderIdempotencyKey повтор запроса с тем же ключом возвращает тот же холд
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректное время начала, ожидается RFC 3339"
	msgInvalidInput         = "некорректные данные бронирования"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffNotFound        = "мастер не найден"
	msgStaffOnLeave         = "у мастера выходной в этот день"
	msgOutsideWorkingHours  = "время вне рабочих часов магазина"
	msgSubscriptionInactive = "подписка магазина неактивна"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgIdempotencyConflict  = "ключ идемпотентности уже использован для другого запроса"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateHoldRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotNotAvailable):
			h.logger.Warn("POST /holds - Slot not available: staff_id=%s, start=%s", req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createHold.ErrIdempotencyConflict):
			h.logger.Warn("POST /holds - Idempotency key reused: staff_id=%s", req.StaffID)
			handlers.RespondUnprocessable(w, msgIdempotencyConflict)

		case errors.Is(err, createHold.ErrSubscriptionInactive):
			h.logger.Warn("POST /holds - Subscription inactive: staff_id=%s", req.StaffID)
			handlers.RespondPaymentRequired(w, msgSubscriptionInactive)

		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /holds - Service not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrStaffNotFound):
			h.logger.Warn("POST /holds - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createHold.ErrStaffOnLeave):
			h.logger.Warn("POST /holds - Staff on leave: staff_id=%s, start=%s", req.StaffID, req.StartTime)
			handlers.RespondUnprocessable(w, msgStaffOnLeave)

		case errors.Is(err, createHold.ErrOutsideWorkingHours):
			h.logger.Warn("POST /holds - Outside working hours: staff_id=%s, start=%s", req.StaffID, req.StartTime)
			handlers.RespondUnprocessable(w, msgOutsideWorkingHours)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /holds - Failed to create hold: staff_id=%s, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /holds - Hold created: booking_id=%s, staff_id=%s, replayed=%t",
		result.BookingID, result.StaffID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
