package confirm_hold

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
)

const operation = "confirm_hold"

// UseCase use case подтверждения холда после оплаты
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения холда
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmHold: booking=%s, with payment=%t", req.BookingID, req.Payment != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Читаем бронирование и проверяем, что это живой холд
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmHold: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmHold: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if err := classify(booking, now); err != nil {
		uc.logger.Warn("ConfirmHold: booking id=%s status=%s deleted=%t: %v",
			booking.ID, booking.Status, booking.IsDeleted(), err)
		uc.metrics.IncBookingOperation(operation, resultOf(err))
		return nil, err
	}

	// 4. Условная запись: побеждает первая, проигравший видит 0 строк
	confirmed, err := uc.bookingRepo.Confirm(ctx, booking.ID, req.CustomerName, req.CustomerPhone, now)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			reason := uc.reclassify(ctx, booking.ID, now)
			uc.logger.Warn("ConfirmHold: booking id=%s lost the race: %v", booking.ID, reason)
			uc.metrics.IncBookingOperation(operation, resultOf(reason))
			return nil, reason
		}
		uc.logger.Error("ConfirmHold: failed to confirm booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingOperation(operation, "success")

	// 5. Привязка платежа. Ошибка не отменяет подтверждение.
	if req.Payment != nil {
		payment := &domain.Payment{
			BookingID:         &confirmed.ID,
			ProviderOrderID:   strings.TrimSpace(req.Payment.ProviderOrderID),
			ProviderPaymentID: req.Payment.ProviderPaymentID,
			Amount:            req.Payment.Amount,
			Currency:          req.Payment.Currency,
			Status:            domain.PaymentPaid,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := uc.paymentRepo.UpsertPaid(ctx, payment); err != nil {
			uc.logger.Error("ConfirmHold: booking id=%s confirmed but payment order=%s was not linked: %v",
				confirmed.ID, payment.ProviderOrderID, err)
			uc.metrics.IncBookingOperation(operation, "payment_link_failed")
		}
	}

	// 6. Событие
	if err := uc.publisher.PublishJSON(ctx, broker.KeyBookingConfirmed, broker.BookingEvent{
		BookingID:  confirmed.ID,
		ShopID:     confirmed.ShopID,
		StaffID:    confirmed.StaffID,
		Status:     string(confirmed.Status),
		PrevStatus: string(domain.StatusPendingPayment),
		StartTime:  confirmed.StartTime,
		EndTime:    confirmed.EndTime,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("ConfirmHold: failed to publish event for booking=%s: %v", confirmed.ID, err)
	}

	uc.logger.Info("ConfirmHold: booking=%s confirmed", confirmed.ID)

	return &Response{
		BookingID: confirmed.ID,
		ShopID:    confirmed.ShopID,
		StaffID:   confirmed.StaffID,
		Status:    string(confirmed.Status),
		StartTime: confirmed.StartTime,
		EndTime:   confirmed.EndTime,
	}, nil
}

// reclassify перечитывает бронирование после проигранной гонки
func (uc *UseCase) reclassify(ctx context.Context, id uuid.UUID, now time.Time) error {
	current, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return ErrNotPending
	}
	if reason := classify(current, now); reason != nil {
		return reason
	}
	return ErrNotPending
}

func resultOf(err error) string {
	if errors.Is(err, ErrHoldExpired) {
		return "expired"
	}
	return "not_pending"
}
