package create_walk_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	createWalkIn "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_walk_in"
)

const (
	msgMissingShopID        = "отсутствует ID магазина"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректное время начала, ожидается RFC 3339"
	msgInvalidInput         = "некорректные данные бронирования"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffNotFound        = "мастер не найден"
	msgStaffOnLeave         = "у мастера выходной в этот день"
	msgOutsideWorkingHours  = "время вне рабочих часов магазина"
	msgForbidden            = "доступ запрещен"
	msgSubscriptionInactive = "подписка магазина неактивна"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase CreateWalkInUseCase
	logger  Logger
}

func NewHandler(useCase CreateWalkInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/walk-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, ok := middleware.GetShopID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/walk-in - Missing shop ID")
		handlers.RespondUnauthorized(w, msgMissingShopID)
		return
	}

	var req CreateWalkInRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings/walk-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID)
	if err != nil {
		h.logger.Warn("POST /bookings/walk-in - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createWalkIn.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/walk-in - Slot not available: shop_id=%s, staff_id=%s", shopID, req.StaffID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createWalkIn.ErrAccessDenied):
			h.logger.Warn("POST /bookings/walk-in - Access denied: shop_id=%s", shopID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createWalkIn.ErrSubscriptionInactive):
			h.logger.Warn("POST /bookings/walk-in - Subscription inactive: shop_id=%s", shopID)
			handlers.RespondPaymentRequired(w, msgSubscriptionInactive)

		case errors.Is(err, createWalkIn.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/walk-in - Service not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createWalkIn.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/walk-in - Staff not found: shop_id=%s, staff_id=%s", shopID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createWalkIn.ErrStaffOnLeave):
			h.logger.Warn("POST /bookings/walk-in - Staff on leave: staff_id=%s", req.StaffID)
			handlers.RespondUnprocessable(w, msgStaffOnLeave)

		case errors.Is(err, createWalkIn.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings/walk-in - Outside working hours: shop_id=%s, start=%s", shopID, req.StartTime)
			handlers.RespondUnprocessable(w, msgOutsideWorkingHours)

		case errors.Is(err, createWalkIn.ErrInvalidInput):
			h.logger.Warn("POST /bookings/walk-in - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/walk-in - Failed to create walk-in: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/walk-in - Walk-in created: booking_id=%s, shop_id=%s",
		result.BookingID, shopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
