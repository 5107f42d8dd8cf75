package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/shop"
	hoursRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/workinghours"
)

// Service проверяет предусловия записи к мастеру и вставляет бронирование.
// Общая часть холда и walk-in записи.
type Service struct {
	bookingRepo  BookingRepository
	shopRepo     ShopRepository
	hoursRepo    WorkingHoursRepository
	subscription SubscriptionChecker
	checker      AvailabilityChecker
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса резервирования
func NewService(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	hoursRepo WorkingHoursRepository,
	subscription SubscriptionChecker,
	checker AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		shopRepo:     shopRepo,
		hoursRepo:    hoursRepo,
		subscription: subscription,
		checker:      checker,
		txManager:    txManager,
		logger:       logger,
	}
}

// ValidateServiceIDs проверяет список услуг запроса
func ValidateServiceIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(ids) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return fmt.Errorf("%w: service id is required", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate service id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Prepare проверяет предусловия по порядку: услуги, мастер, рабочие часы,
// подписка магазина, пересечения. Возвращает черновик бронирования.
func (s *Service) Prepare(ctx context.Context, req *Request, now time.Time) (*Draft, error) {
	if req.StaffID == uuid.Nil {
		return nil, fmt.Errorf("%w: staff id is required", ErrInvalidInput)
	}
	if err := ValidateServiceIDs(req.ServiceIDs); err != nil {
		return nil, err
	}
	if req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	start := req.StartTime.UTC()
	if start.Before(now) {
		return nil, fmt.Errorf("%w: start time is in the past", ErrInvalidInput)
	}

	// 1. Услуги
	services, err := s.LoadServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if req.ShopID != nil && *req.ShopID != services.ShopID {
		s.logger.Warn("Prepare: services of shop=%s requested by shop=%s", services.ShopID, *req.ShopID)
		return nil, ErrAccessDenied
	}
	end := start.Add(time.Duration(services.TotalDurationMinutes) * time.Minute)

	// 2. Мастер
	staff, err := s.LoadStaff(ctx, req.StaffID, services.ShopID)
	if err != nil {
		return nil, err
	}
	if staff.IsOnLeave(start) {
		s.logger.Warn("Prepare: staff=%s is on leave on %s", staff.ID, start.Format(domain.DateFormat))
		return nil, ErrStaffOnLeave
	}

	// 3. Рабочие часы
	hours, err := s.WorkingHoursFor(ctx, services.ShopID, start)
	if err != nil {
		return nil, err
	}
	if !hours.Contains(start, end) {
		s.logger.Warn("Prepare: window %s-%s is outside working hours of shop=%s",
			start.Format(time.RFC3339), end.Format(time.RFC3339), services.ShopID)
		return nil, ErrOutsideWorkingHours
	}

	// 4. Subscription Gate
	if err := s.CheckSubscription(ctx, services.ShopID); err != nil {
		return nil, err
	}

	// 5. Быстрая проверка пересечений
	result, err := s.checker.CheckAt(ctx, staff.ID, start, end, now)
	if err != nil {
		s.logger.Error("Prepare: availability check failed for staff=%s: %v", staff.ID, err)
		return nil, fmt.Errorf("%w: Prepare - availability check: %v", ErrInternal, err)
	}
	if !result.Available {
		s.logger.Warn("Prepare: window %s-%s of staff=%s is taken by booking=%s",
			start.Format(time.RFC3339), end.Format(time.RFC3339), staff.ID, result.Conflicts[0].ID)
		return nil, ErrSlotNotAvailable
	}

	return &Draft{
		ShopID:               services.ShopID,
		StaffID:              staff.ID,
		ServiceIDs:           services.IDs,
		StartTime:            start,
		EndTime:              end,
		TotalPrice:           services.TotalPrice,
		TotalDurationMinutes: services.TotalDurationMinutes,
	}, nil
}

// Insert вставляет бронирование в транзакции, предварительно освобождая
// просроченные холды, пересекающие окно. Нарушение exclusion constraint
// возвращается как ErrSlotNotAvailable.
func (s *Service) Insert(ctx context.Context, booking *domain.Booking, now time.Time) (*domain.Booking, error) {
	var created *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		released, err := s.bookingRepo.ReleaseExpiredHolds(ctx, booking.StaffID, booking.StartTime, booking.EndTime, now)
		if err != nil {
			return err
		}
		if released > 0 {
			s.logger.Info("Insert: released %d expired hold(s) of staff=%s", released, booking.StaffID)
		}

		created, err = s.bookingRepo.Create(ctx, booking)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
			s.logger.Warn("Insert: exclusion constraint rejected staff=%s window %s-%s",
				booking.StaffID, booking.StartTime.Format(time.RFC3339), booking.EndTime.Format(time.RFC3339))
			return nil, ErrSlotNotAvailable
		case errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey):
			s.logger.Warn("Insert: idempotency key is already used")
			return nil, ErrDuplicateIdempotencyKey
		}
		s.logger.Error("Insert: failed to create booking for staff=%s: %v", booking.StaffID, err)
		return nil, fmt.Errorf("%w: Insert - create booking: %v", ErrInternal, err)
	}

	return created, nil
}

// LoadServices загружает активные услуги одного магазина и считает итоги
func (s *Service) LoadServices(ctx context.Context, ids []uuid.UUID) (*ServiceSet, error) {
	services, err := s.shopRepo.GetServicesByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("LoadServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: LoadServices - repository error: %v", ErrInternal, err)
	}

	byID := make(map[uuid.UUID]*domain.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	set := &ServiceSet{IDs: make([]uuid.UUID, 0, len(ids))}
	for i, id := range ids {
		svc, ok := byID[id]
		if !ok || !svc.IsActive {
			s.logger.Warn("LoadServices: service id=%s not found or inactive", id)
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		if i == 0 {
			set.ShopID = svc.ShopID
		} else if svc.ShopID != set.ShopID {
			s.logger.Warn("LoadServices: service id=%s belongs to another shop", id)
			return nil, fmt.Errorf("%w: services belong to different shops", ErrInvalidInput)
		}
		if svc.DurationMinutes <= 0 {
			s.logger.Warn("LoadServices: service id=%s has non-positive duration", id)
			return nil, fmt.Errorf("%w: service %s has no duration", ErrInvalidInput, id)
		}

		set.IDs = append(set.IDs, id)
		set.TotalPrice += svc.Price
		set.TotalDurationMinutes += svc.DurationMinutes
	}

	return set, nil
}

// LoadStaff загружает активного мастера указанного магазина
func (s *Service) LoadStaff(ctx context.Context, staffID, shopID uuid.UUID) (*domain.Staff, error) {
	staff, err := s.shopRepo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrStaffNotFound) {
			s.logger.Warn("LoadStaff: staff id=%s not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("LoadStaff: repository error for staff id=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: LoadStaff - repository error: %v", ErrInternal, err)
	}

	if !staff.IsActive || staff.ShopID != shopID {
		s.logger.Warn("LoadStaff: staff id=%s is inactive or not in shop=%s", staffID, shopID)
		return nil, ErrStaffNotFound
	}

	return staff, nil
}

// WorkingHoursFor возвращает рабочие часы магазина на день недели даты.
// Отсутствие записи означает выходной: возвращается nil без ошибки.
func (s *Service) WorkingHoursFor(ctx context.Context, shopID uuid.UUID, date time.Time) (*domain.WorkingHours, error) {
	day := int(date.UTC().Weekday())

	hours, err := s.hoursRepo.GetByShopAndDay(ctx, shopID, day)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrWorkingHoursNotFound) {
			return nil, nil
		}
		s.logger.Error("WorkingHoursFor: repository error for shop=%s day=%d: %v", shopID, day, err)
		return nil, fmt.Errorf("%w: WorkingHoursFor - repository error: %v", ErrInternal, err)
	}

	return hours, nil
}

// CheckSubscription спрашивает Subscription Gate, может ли магазин принимать записи
func (s *Service) CheckSubscription(ctx context.Context, shopID uuid.UUID) error {
	access, err := s.subscription.CheckAccess(ctx, shopID)
	if err != nil {
		s.logger.Error("CheckSubscription: failed for shop=%s: %v", shopID, err)
		return fmt.Errorf("%w: CheckSubscription: %v", ErrInternal, err)
	}
	if !access.Allowed {
		s.logger.Warn("CheckSubscription: shop=%s denied: %s", shopID, access.Reason)
		return fmt.Errorf("%w: %s", ErrSubscriptionInactive, access.Reason)
	}
	return nil
}
