package replace_working_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/service/workinghours"
)

const (
	msgInvalidShopID      = "некорректный ID магазина"
	msgMissingShopID      = "отсутствует ID магазина"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректные рабочие часы"
	msgShopNotFound       = "магазин не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shops/{shopId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.ParseUUID(mux.Vars(r)["shopId"])
	if err != nil {
		h.logger.Warn("PUT /shops/{id}/working-hours - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actorShopID, ok := middleware.GetShopID(r.Context())
	if !ok {
		h.logger.Warn("PUT /shops/{id}/working-hours - Missing shop ID")
		handlers.RespondUnauthorized(w, msgMissingShopID)
		return
	}

	var req ReplaceWorkingHoursRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	week, err := h.service.Replace(r.Context(), req.ToServiceRequest(shopID, actorShopID))
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{id}/working-hours - Access denied: shop_id=%s, actor=%s", shopID, actorShopID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, workinghours.ErrShopNotFound):
			h.logger.Warn("PUT /shops/{id}/working-hours - Shop not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, workinghours.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{id}/working-hours - Invalid hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		default:
			h.logger.Error("PUT /shops/{id}/working-hours - Failed to replace working hours: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/working-hours - Working hours replaced: shop_id=%s", shopID)
	handlers.RespondJSON(w, http.StatusOK, week)
}
