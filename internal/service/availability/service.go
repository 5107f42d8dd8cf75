package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// Result результат проверки окна
type Result struct {
	Available bool
	Conflicts []*domain.Booking
}

// Checker проверяет, не пересечется ли новое бронирование с живыми бронированиями мастера.
// Это быстрая проверка: окончательное решение принимает exclusion constraint при вставке.
type Checker struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(bookingRepo BookingRepository, logger Logger) *Checker {
	return &Checker{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (c *Checker) WithTimeProvider(tp TimeProvider) *Checker {
	c.timeProvider = tp
	return c
}

// Check проверяет окно [start, end) мастера на момент "сейчас"
func (c *Checker) Check(ctx context.Context, staffID uuid.UUID, start, end time.Time) (*Result, error) {
	return c.CheckAt(ctx, staffID, start, end, c.timeProvider.Now())
}

// CheckAt проверяет окно [start, end) мастера на момент now
func (c *Checker) CheckAt(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (*Result, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}

	bookings, err := c.bookingRepo.ListByStaffStartingBetween(ctx, staffID, start.Add(-domain.ConflictLookback), end)
	if err != nil {
		c.logger.Error("Check: failed to list bookings for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: Check - list bookings: %v", ErrInternal, err)
	}

	conflicts := FindConflicts(bookings, start, end, now)
	if len(conflicts) > 0 {
		c.logger.Info("Check: staff=%s window %s-%s blocked by %d booking(s), first id=%s",
			staffID, start.Format(time.RFC3339), end.Format(time.RFC3339), len(conflicts), conflicts[0].ID)
	}

	return &Result{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// LiveWindows возвращает окна живых бронирований мастера, пересекающих [from, to)
func (c *Checker) LiveWindows(ctx context.Context, staffID uuid.UUID, from, to, now time.Time) ([]domain.TimeWindow, error) {
	bookings, err := c.bookingRepo.ListByStaffStartingBetween(ctx, staffID, from.Add(-domain.ConflictLookback), to)
	if err != nil {
		c.logger.Error("LiveWindows: failed to list bookings for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: LiveWindows - list bookings: %v", ErrInternal, err)
	}

	live := FindConflicts(bookings, from, to, now)
	windows := make([]domain.TimeWindow, 0, len(live))
	for _, b := range live {
		windows = append(windows, b.Window())
	}
	return windows, nil
}

// FindConflicts отбирает бронирования, живые на момент now и пересекающие [start, end).
// Просроченный холд не блокирует окно, даже если reaper его еще не удалил.
func FindConflicts(bookings []*domain.Booking, start, end, now time.Time) []*domain.Booking {
	window := domain.TimeWindow{Start: start, End: end}
	conflicts := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if !b.IsLiveAt(now) {
			continue
		}
		if window.Overlaps(b.Window()) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
