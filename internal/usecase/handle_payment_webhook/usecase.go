package handle_payment_webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

// UseCase use case обработки вебхука платежного провайдера
type UseCase struct {
	parser       EventParser
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	confirmer    HoldConfirmer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	parser EventParser,
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	confirmer HoldConfirmer,
	logger Logger,
) *UseCase {
	return &UseCase{
		parser:       parser,
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		confirmer:    confirmer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case обработки вебхука
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Подпись и разбор события
	event, err := uc.parser.ParseEvent(req.Body, req.Signature)
	if err != nil {
		if errors.Is(err, paymentprovider.ErrInvalidSignature) {
			uc.logger.Warn("PaymentWebhook: invalid signature")
			return nil, ErrInvalidPaymentSignature
		}
		uc.logger.Warn("PaymentWebhook: invalid event: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("PaymentWebhook: order=%s status=%s", event.OrderID, event.Status)

	status := domain.PaymentFailed
	if event.Status == paymentprovider.EventStatusPaid {
		status = domain.PaymentPaid
	}

	var paymentID *string
	if event.PaymentID != "" {
		paymentID = ptr.Ptr(event.PaymentID)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Платеж по заказу
	payment, err := uc.paymentRepo.GetByProviderOrderID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("PaymentWebhook: order=%s is unknown", event.OrderID)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("PaymentWebhook: failed to get payment order=%s: %v", event.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	resp := &Response{
		OrderID:       event.OrderID,
		PaymentStatus: string(status),
		BookingID:     payment.BookingID,
	}

	// 4. created|failed -> paid, created -> failed; повторная доставка видит 0 строк
	if err := uc.paymentRepo.MarkSettled(ctx, event.OrderID, status, paymentID, now); err != nil {
		if !errors.Is(err, paymentRepo.ErrStatusChanged) {
			uc.logger.Error("PaymentWebhook: failed to update payment order=%s: %v", event.OrderID, err)
			return nil, fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
		}
		resp.Duplicate = true
		if payment.Status != status {
			uc.logger.Warn("PaymentWebhook: order=%s is already %s, ignoring %s", event.OrderID, payment.Status, status)
			resp.PaymentStatus = string(payment.Status)
			return resp, nil
		}
		uc.logger.Info("PaymentWebhook: order=%s already %s, redelivery", event.OrderID, status)
	}

	if status != domain.PaymentPaid || payment.BookingID == nil {
		return resp, nil
	}

	// 5. Оплаченный живой холд с данными клиента подтверждаем сразу
	confirmed, err := uc.confirmPaidHold(ctx, payment, paymentID, now)
	if err != nil {
		return nil, err
	}
	resp.BookingConfirmed = confirmed

	return resp, nil
}

// confirmPaidHold подтверждает холд оплаченного заказа, если это еще возможно.
// Холд без данных клиента ждет явного подтверждения.
func (uc *UseCase) confirmPaidHold(ctx context.Context, payment *domain.Payment, paymentID *string, now time.Time) (bool, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, *payment.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("PaymentWebhook: order=%s is paid but booking=%s does not exist",
				payment.ProviderOrderID, *payment.BookingID)
			return false, nil
		}
		uc.logger.Error("PaymentWebhook: failed to get booking=%s: %v", *payment.BookingID, err)
		return false, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsHold() || !booking.IsLiveAt(now) {
		if booking.Status != domain.StatusConfirmed {
			uc.logger.Error("PaymentWebhook: order=%s is paid but booking=%s is %s (deleted=%t), refund required",
				payment.ProviderOrderID, booking.ID, booking.Status, booking.IsDeleted())
		}
		return false, nil
	}

	if !booking.HasCustomer() {
		uc.logger.Info("PaymentWebhook: booking=%s is paid and waits for customer details", booking.ID)
		return false, nil
	}

	_, err = uc.confirmer.Execute(ctx, &confirm_hold.Request{
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		Payment: &confirm_hold.PaymentRefs{
			ProviderOrderID:   payment.ProviderOrderID,
			ProviderPaymentID: paymentID,
			Amount:            payment.Amount,
			Currency:          payment.Currency,
		},
	})
	if err != nil {
		if errors.Is(err, confirm_hold.ErrNotPending) || errors.Is(err, confirm_hold.ErrHoldExpired) {
			uc.logger.Warn("PaymentWebhook: booking=%s could not be confirmed: %v", booking.ID, err)
			return false, nil
		}
		uc.logger.Error("PaymentWebhook: failed to confirm booking=%s: %v", booking.ID, err)
		return false, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}

	uc.logger.Info("PaymentWebhook: booking=%s confirmed by order=%s", booking.ID, payment.ProviderOrderID)
	return true, nil
}
