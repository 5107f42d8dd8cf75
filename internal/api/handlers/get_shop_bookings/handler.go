package get_shop_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
)

const (
	msgInvalidShopID = "некорректный ID магазина"
	msgMissingShopID = "отсутствует ID магазина"
	msgInvalidParams = "некорректные параметры запроса, нужна дата YYYY-MM-DD"
	msgInvalidStatus = "неизвестный статус"
	msgForbidden     = "доступ запрещен"
)

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

// Handle GET /api/v1/shops/{shopId}/bookings
// Query params: date (обязательно), staffId, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.ParseUUID(mux.Vars(r)["shopId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/bookings - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actorShopID, ok := middleware.GetShopID(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{id}/bookings - Missing shop ID")
		handlers.RespondUnauthorized(w, msgMissingShopID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(shopID, actorShopID, query.Get("date"), query.Get("staffId"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /shops/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetDailyCalendar(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/bookings - Access denied: shop_id=%s, actor=%s", shopID, actorShopID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/bookings - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /shops/{id}/bookings - Failed to get bookings: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/bookings - Bookings retrieved: shop_id=%s, count=%d", shopID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
