package get_working_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ShopBooking/internal/service/workinghours"
)

const (
	msgInvalidShopID = "некорректный ID магазина"
	msgShopNotFound  = "магазин не найден"
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

// Handle GET /api/v1/shops/{shopId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.ParseUUID(mux.Vars(r)["shopId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/working-hours - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	week, err := h.service.Get(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, workinghours.ErrShopNotFound) {
			h.logger.Warn("GET /shops/{id}/working-hours - Shop not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
			return
		}
		h.logger.Error("GET /shops/{id}/working-hours - Failed to get working hours: shop_id=%s, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/working-hours - Working hours retrieved: shop_id=%s", shopID)
	handlers.RespondJSON(w, http.StatusOK, week)
}
