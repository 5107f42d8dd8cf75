package update_booking_status

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingShopID        = "отсутствует ID магазина"
	msgInvalidStatus        = "неизвестный статус"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgSubscriptionInactive = "подписка магазина неактивна"
	msgIllegalTransition    = "переход статуса запрещен"
)

// UpdateStatusRequest тело PATCH запроса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=seated completed no_show canceled"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseUUID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	shopID, ok := middleware.GetShopID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing shop ID")
		handlers.RespondUnauthorized(w, msgMissingShopID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Transition(r.Context(), &models.TransitionRequest{
		BookingID:   bookingID,
		Status:      req.Status,
		ActorShopID: shopID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%s, shop_id=%s", bookingID, shopID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrSubscriptionInactive):
			h.logger.Warn("PATCH /bookings/{id}/status - Subscription inactive: shop_id=%s", shopID)
			handlers.RespondPaymentRequired(w, msgSubscriptionInactive)

		case errors.Is(err, bookings.ErrIllegalTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Illegal transition: booking_id=%s, %v", bookingID, err)
			handlers.RespondConflict(w, msgIllegalTransition+": "+transitionDetail(err))

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%s, status=%s", bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// transitionDetail оставляет только причину, например "completed bookings are read-only"
func transitionDetail(err error) string {
	return strings.TrimPrefix(err.Error(), bookings.ErrIllegalTransition.Error()+": ")
}
