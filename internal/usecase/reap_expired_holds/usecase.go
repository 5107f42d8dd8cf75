package reap_expired_holds

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
)

// UseCase use case очистки просроченных холдов.
// Идемпотентен и безопасен при параллельном запуске: удаляются только строки,
// которые в момент записи все еще pending_payment и просрочены.
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute мягко удаляет все просроченные холды одним запросом
func (uc *UseCase) Execute(ctx context.Context) (*ReapResponse, error) {
	now := uc.timeProvider.Now()

	cleaned, err := uc.bookingRepo.SoftDeleteExpiredHolds(ctx, now)
	if err != nil {
		uc.logger.Error("ReapExpiredHolds: failed to delete expired holds: %v", err)
		return nil, fmt.Errorf("%w: failed to delete expired holds: %v", ErrInternal, err)
	}

	uc.metrics.AddHoldsReaped(cleaned)

	if cleaned == 0 {
		return &ReapResponse{}, nil
	}

	if err := uc.publisher.PublishJSON(ctx, broker.KeyHoldsReaped, broker.HoldsReapedEvent{
		Count:      cleaned,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("ReapExpiredHolds: failed to publish event: %v", err)
	}

	uc.logger.Info("ReapExpiredHolds: cleaned %d expired hold(s)", cleaned)
	return &ReapResponse{Cleaned: cleaned}, nil
}

// Count возвращает число просроченных, еще не удаленных холдов
func (uc *UseCase) Count(ctx context.Context) (*CountResponse, error) {
	count, err := uc.bookingRepo.CountExpiredHolds(ctx, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("CountExpiredHolds: failed to count: %v", err)
		return nil, fmt.Errorf("%w: failed to count expired holds: %v", ErrInternal, err)
	}

	uc.metrics.SetExpiredHolds(count)
	return &CountResponse{Count: count}, nil
}
