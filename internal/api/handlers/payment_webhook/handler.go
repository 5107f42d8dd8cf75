package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ShopBooking/internal/api/handlers"
	handleWebhook "github.com/m04kA/SMC-ShopBooking/internal/usecase/handle_payment_webhook"
)

// HeaderSignature HMAC-SHA256 тела в hex
const HeaderSignature = "X-Signature"

const maxWebhookBytes = 64 << 10

const (
	msgUnreadableBody   = "не удалось прочитать тело запроса"
	msgInvalidSignature = "некорректная подпись"
	msgInvalidEvent     = "некорректное событие"
	msgPaymentNotFound  = "платеж не найден"
)

// WebhookResponse HTTP response model
type WebhookResponse struct {
	OrderID          string  `json:"orderId"`
	PaymentStatus    string  `json:"paymentStatus"`
	BookingID        *string `json:"bookingId,omitempty"`
	BookingConfirmed bool    `json:"bookingConfirmed"`
	Duplicate        bool    `json:"duplicate"`
}

type Handler struct {
	useCase PaymentWebhookUseCase
	logger  Logger
}

func NewHandler(useCase PaymentWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Подпись проверяется по сырому телу, поэтому оно читается целиком до разбора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &handleWebhook.Request{
		Body:      body,
		Signature: r.Header.Get(HeaderSignature),
	})
	if err != nil {
		switch {
		case errors.Is(err, handleWebhook.ErrInvalidPaymentSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature")
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, handleWebhook.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		case errors.Is(err, handleWebhook.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: %v", err)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			// 5xx: провайдер повторит доставку
			h.logger.Error("POST /payments/webhook - Failed to process event: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := WebhookResponse{
		OrderID:          result.OrderID,
		PaymentStatus:    result.PaymentStatus,
		BookingConfirmed: result.BookingConfirmed,
		Duplicate:        result.Duplicate,
	}
	if result.BookingID != nil {
		id := result.BookingID.String()
		resp.BookingID = &id
	}

	h.logger.Info("POST /payments/webhook - Event processed: order_id=%s, status=%s, confirmed=%t, duplicate=%t",
		result.OrderID, result.PaymentStatus, result.BookingConfirmed, result.Duplicate)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
