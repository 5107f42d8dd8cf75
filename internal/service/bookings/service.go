package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

// Service сервис персонала: чтение бронирований и смена статусов
type Service struct {
	bookingRepo  BookingRepository
	subscription SubscriptionChecker
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	subscription SubscriptionChecker,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		subscription: subscription,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID. Видно только магазину-владельцу.
func (s *Service) GetByID(ctx context.Context, id, actorShopID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for shop=%s", id, actorShopID)

	booking, err := s.getOwned(ctx, "GetByID", id, actorShopID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetDailyCalendar возвращает бронирования магазина на календарный день (UTC)
func (s *Service) GetDailyCalendar(ctx context.Context, req *models.DailyCalendarRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDailyCalendar: shop=%s date=%s actor=%s", req.ShopID, req.Date.Format(domain.DateFormat), req.ActorShopID)

	if req.ShopID != req.ActorShopID {
		s.logger.Warn("GetDailyCalendar: shop=%s is not owned by actor=%s", req.ShopID, req.ActorShopID)
		return nil, ErrAccessDenied
	}

	y, m, d := req.Date.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	filter := domain.ShopBookingsFilter{
		ShopID:  req.ShopID,
		From:    from,
		To:      from.AddDate(0, 0, 1),
		StaffID: req.StaffID,
	}

	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.IsValid() {
			s.logger.Warn("GetDailyCalendar: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.ListByShop(ctx, filter)
	if err != nil {
		s.logger.Error("GetDailyCalendar: repository error for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetDailyCalendar - repository error: %v", ErrInternal, err)
	}

	// Просроченные холды логически свободны, в календаре их не показываем
	now := s.timeProvider.Now()
	visible := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsHold() && b.IsExpiredAt(now) {
			continue
		}
		visible = append(visible, b)
	}

	s.logger.Info("GetDailyCalendar: fetched %d bookings for shop=%s", len(visible), req.ShopID)
	return models.FromDomainBookingList(visible), nil
}

// Transition выполняет действие персонала: seat, complete, no_show, cancel
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking=%s target=%s actor=%s", req.BookingID, req.Status, req.ActorShopID)

	// 1. Валидация целевого статуса
	target := domain.BookingStatus(req.Status)
	if !target.IsValid() {
		s.logger.Warn("Transition: invalid target status=%s", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	// 2. Бронирование и права
	booking, err := s.getOwned(ctx, "Transition", req.BookingID, req.ActorShopID)
	if err != nil {
		return nil, err
	}

	// 3. Таблица переходов
	if !domain.CanTransition(booking.Status, target) {
		s.logger.Warn("Transition: booking=%s %s -> %s rejected", booking.ID, booking.Status, target)
		s.metrics.IncBookingOperation("transition", "illegal")
		return nil, fmt.Errorf("%w: %s", ErrIllegalTransition, domain.TransitionError(booking.Status, target))
	}

	// 4. Subscription Gate
	if err := s.checkSubscription(ctx, booking.ShopID); err != nil {
		return nil, err
	}

	// 5. Условная запись: проходит только если статус не изменился с момента чтения
	now := s.timeProvider.Now()
	prev := booking.Status
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, prev, target, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			current := s.currentStatus(ctx, booking.ID)
			s.logger.Warn("Transition: booking=%s changed concurrently, now %s", booking.ID, current)
			s.metrics.IncBookingOperation("transition", "conflict")
			return nil, fmt.Errorf("%w: booking status changed to %s", ErrIllegalTransition, current)
		}
		s.logger.Error("Transition: repository error for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	booking.Status = target
	booking.UpdatedAt = now
	s.metrics.IncBookingOperation("transition", string(target))

	if err := s.publisher.PublishJSON(ctx, broker.KeyBookingStatusChanged, broker.BookingEvent{
		BookingID:  booking.ID,
		ShopID:     booking.ShopID,
		StaffID:    booking.StaffID,
		Status:     string(target),
		PrevStatus: string(prev),
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		IsWalkIn:   booking.IsWalkIn,
		OccurredAt: now,
	}); err != nil {
		s.logger.Warn("Transition: failed to publish event for booking=%s: %v", booking.ID, err)
	}

	s.logger.Info("Transition: booking=%s %s -> %s", booking.ID, prev, target)
	return models.FromDomainBooking(booking), nil
}

// getOwned читает неудаленное бронирование и проверяет владельца
func (s *Service) getOwned(ctx context.Context, op string, id, actorShopID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.IsDeleted() {
		s.logger.Warn("%s: booking id=%s is deleted", op, id)
		return nil, ErrBookingNotFound
	}

	if booking.ShopID != actorShopID {
		s.logger.Warn("%s: access denied for shop=%s to booking id=%s", op, actorShopID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) checkSubscription(ctx context.Context, shopID uuid.UUID) error {
	access, err := s.subscription.CheckAccess(ctx, shopID)
	if err != nil {
		s.logger.Error("checkSubscription: failed for shop=%s: %v", shopID, err)
		return fmt.Errorf("%w: checkSubscription: %v", ErrInternal, err)
	}
	if !access.Allowed {
		s.logger.Warn("checkSubscription: shop=%s denied: %s", shopID, access.Reason)
		return fmt.Errorf("%w: %s", ErrSubscriptionInactive, access.Reason)
	}
	return nil
}

func (s *Service) currentStatus(ctx context.Context, id uuid.UUID) domain.BookingStatus {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return "unknown"
	}
	if booking.IsDeleted() {
		return "deleted"
	}
	return booking.Status
}
