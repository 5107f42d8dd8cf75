package create_walk_in

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
)

const operation = "create_walk_in"

// UseCase use case записи без холда: бронирование сразу подтверждено
type UseCase struct {
	reservations Reservations
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations Reservations,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations: reservations,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания walk-in бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateWalkIn: actor=%s, staff=%s, services=%v, start=%s",
		req.ActorShopID, req.StaffID, req.ServiceIDs, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateWalkIn: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Те же предусловия, что и у холда, плюс магазин актора
	draft, err := uc.reservations.Prepare(ctx, &reservation.Request{
		StaffID:    req.StaffID,
		ServiceIDs: req.ServiceIDs,
		StartTime:  req.StartTime,
		ShopID:     &req.ActorShopID,
	}, now)
	if err != nil {
		uc.metrics.IncBookingOperation(operation, resultOf(err))
		return nil, err
	}

	// 4. Сразу confirmed, без срока
	booking := draft.Booking(domain.StatusConfirmed)
	booking.IsWalkIn = true
	booking.CustomerName = req.CustomerName
	booking.CustomerPhone = req.CustomerPhone

	created, err := uc.reservations.Insert(ctx, booking, now)
	if err != nil {
		uc.metrics.IncBookingOperation(operation, resultOf(err))
		return nil, err
	}

	uc.metrics.IncBookingOperation(operation, "success")

	// 5. Событие
	if err := uc.publisher.PublishJSON(ctx, broker.KeyBookingConfirmed, broker.BookingEvent{
		BookingID:  created.ID,
		ShopID:     created.ShopID,
		StaffID:    created.StaffID,
		Status:     string(created.Status),
		StartTime:  created.StartTime,
		EndTime:    created.EndTime,
		IsWalkIn:   true,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("CreateWalkIn: failed to publish event for booking=%s: %v", created.ID, err)
	}

	uc.logger.Info("CreateWalkIn: booking=%s created for staff=%s", created.ID, created.StaffID)

	return &Response{
		BookingID:  created.ID,
		ShopID:     created.ShopID,
		StaffID:    created.StaffID,
		Status:     string(created.Status),
		StartTime:  created.StartTime,
		EndTime:    created.EndTime,
		TotalPrice: created.TotalPrice,
	}, nil
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, reservation.ErrSlotNotAvailable):
		return "conflict"
	case errors.Is(err, reservation.ErrAccessDenied):
		return "denied"
	case errors.Is(err, reservation.ErrSubscriptionInactive):
		return "subscription_inactive"
	case errors.Is(err, reservation.ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}
