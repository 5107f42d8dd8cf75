package count_expired_holds

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	reapExpiredHolds "github.com/m04kA/SMC-ShopBooking/internal/usecase/reap_expired_holds"
)

type ExpiredHoldsCounter interface {
	Count(ctx context.Context) (*reapExpiredHolds.CountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CountResponse HTTP response model
type CountResponse struct {
	Count int64 `json:"count"`
}

type Handler struct {
	useCase ExpiredHoldsCounter
	logger  Logger
}

func NewHandler(useCase ExpiredHoldsCounter, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/internal/holds/expired/count
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Count(r.Context())
	if err != nil {
		h.logger.Error("GET /internal/holds/expired/count - Failed to count holds: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CountResponse{Count: result.Count})
}
