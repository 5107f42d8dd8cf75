package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

const operation = "create_hold"

// UseCase use case создания холда: временного бронирования на время оплаты
type UseCase struct {
	bookingRepo  BookingRepository
	reservations Reservations
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reservations Reservations,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		reservations: reservations,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания холда
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: staff=%s, services=%v, start=%s",
		req.StaffID, req.ServiceIDs, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		uc.metrics.IncBookingOperation(operation, "invalid")
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Повтор запроса с тем же ключом идемпотентности
	var key *string
	if req.IdempotencyKey != nil {
		key = req.IdempotencyKey
		if resp, err := uc.replay(ctx, *key, req); resp != nil || err != nil {
			return resp, err
		}
	}

	// 4. Предусловия: услуги, мастер, рабочие часы, подписка, пересечения
	draft, err := uc.reservations.Prepare(ctx, &reservation.Request{
		StaffID:    req.StaffID,
		ServiceIDs: req.ServiceIDs,
		StartTime:  req.StartTime,
	}, now)
	if err != nil {
		uc.metrics.IncBookingOperation(operation, resultOf(err))
		return nil, err
	}

	// 5. Холд живет domain.HoldDuration
	booking := draft.Booking(domain.StatusPendingPayment)
	booking.ExpiresAt = ptr.Ptr(now.Add(domain.HoldDuration))
	booking.CustomerName = req.CustomerName
	booking.CustomerPhone = req.CustomerPhone
	booking.IdempotencyKey = key

	// 6. Вставка под защитой exclusion constraint
	created, err := uc.reservations.Insert(ctx, booking, now)
	if err != nil {
		if errors.Is(err, reservation.ErrDuplicateIdempotencyKey) && key != nil {
			// Параллельный запрос с тем же ключом успел первым
			if resp, replayErr := uc.replay(ctx, *key, req); resp != nil || replayErr != nil {
				return resp, replayErr
			}
		}
		uc.metrics.IncBookingOperation(operation, resultOf(err))
		return nil, err
	}

	uc.metrics.IncBookingOperation(operation, "success")

	// 7. Событие
	if err := uc.publisher.PublishJSON(ctx, broker.KeyBookingHeld, broker.BookingEvent{
		BookingID:  created.ID,
		ShopID:     created.ShopID,
		StaffID:    created.StaffID,
		Status:     string(created.Status),
		StartTime:  created.StartTime,
		EndTime:    created.EndTime,
		ExpiresAt:  created.ExpiresAt,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("CreateHold: failed to publish event for booking=%s: %v", created.ID, err)
	}

	uc.logger.Info("CreateHold: booking=%s held for staff=%s until %s",
		created.ID, created.StaffID, created.ExpiresAt.Format(time.RFC3339))

	return toResponse(created, false), nil
}

// replay возвращает ранее созданный холд для ключа. Если ключ не использован,
// возвращает nil, nil.
func (uc *UseCase) replay(ctx context.Context, key string, req *Request) (*Response, error) {
	existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateHold: failed to look up idempotency key: %v", err)
		return nil, fmt.Errorf("%w: failed to look up idempotency key: %v", ErrInternal, err)
	}

	if existing.StaffID != req.StaffID || !existing.StartTime.Equal(req.StartTime) {
		uc.logger.Warn("CreateHold: idempotency key of booking=%s reused for staff=%s start=%s",
			existing.ID, req.StaffID, req.StartTime.Format(time.RFC3339))
		uc.metrics.IncBookingOperation(operation, "idempotency_conflict")
		return nil, ErrIdempotencyConflict
	}

	uc.logger.Info("CreateHold: replaying booking=%s for idempotency key", existing.ID)
	uc.metrics.IncBookingOperation(operation, "replayed")
	return toResponse(existing, true), nil
}

func toResponse(b *domain.Booking, replayed bool) *Response {
	resp := &Response{
		BookingID:            b.ID,
		ShopID:               b.ShopID,
		StaffID:              b.StaffID,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		TotalPrice:           b.TotalPrice,
		TotalDurationMinutes: b.TotalDurationMinutes,
		Replayed:             replayed,
	}
	if b.ExpiresAt != nil {
		resp.ExpiresAt = *b.ExpiresAt
	}
	return resp
}

// resultOf метка результата для метрик
func resultOf(err error) string {
	switch {
	case errors.Is(err, reservation.ErrSlotNotAvailable):
		return "conflict"
	case errors.Is(err, reservation.ErrSubscriptionInactive):
		return "subscription_inactive"
	case errors.Is(err, reservation.ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}
