package reap_expired_holds

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	reapExpiredHolds "github.com/m04kA/SMC-ShopBooking/internal/usecase/reap_expired_holds"
)

type ReapExpiredHoldsUseCase interface {
	Execute(ctx context.Context) (*reapExpiredHolds.ReapResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReapResponse HTTP response model
type ReapResponse struct {
	Cleaned int64 `json:"cleaned"`
}

type Handler struct {
	useCase ReapExpiredHoldsUseCase
	logger  Logger
}

func NewHandler(useCase ReapExpiredHoldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/holds/reap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/holds/reap - Failed to reap holds: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/holds/reap - Holds reaped: cleaned=%d", result.Cleaned)
	handlers.RespondJSON(w, http.StatusOK, ReapResponse{Cleaned: result.Cleaned})
}
