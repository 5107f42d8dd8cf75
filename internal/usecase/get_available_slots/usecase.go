package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// UseCase use case для получения доступных слотов мастера на дату
type UseCase struct {
	reservations Reservations
	windows      LiveWindowsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations Reservations,
	windows LiveWindowsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations: reservations,
		windows:      windows,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, staff=%s, services=%v, date=%s",
		req.ShopID, req.StaffID, req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и дата
	now := uc.timeProvider.Now()
	date := startOfDay(req.Date)
	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, err
	}

	resp := &Response{
		Date:    date,
		ShopID:  req.ShopID,
		StaffID: req.StaffID,
		Slots:   []domain.Slot{},
	}

	// 3. Услуги: суммарная длительность, все из магазина запроса
	services, err := uc.reservations.LoadServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if services.ShopID != req.ShopID {
		uc.logger.Warn("GetAvailableSlots: services belong to shop=%s, not shop=%s", services.ShopID, req.ShopID)
		return nil, ErrServiceNotFound
	}
	resp.DurationMinutes = services.TotalDurationMinutes

	// 4. Мастер
	staff, err := uc.reservations.LoadStaff(ctx, req.StaffID, req.ShopID)
	if err != nil {
		return nil, err
	}
	if staff.IsOnLeave(date) {
		uc.logger.Info("GetAvailableSlots: staff=%s is on leave on %s", staff.ID, date.Format(domain.DateFormat))
		return resp, nil
	}

	// 5. Рабочие часы на день недели
	hours, err := uc.reservations.WorkingHoursFor(ctx, req.ShopID, date)
	if err != nil {
		return nil, err
	}
	if !hours.IsOpen() {
		uc.logger.Info("GetAvailableSlots: shop=%s is closed on %s", req.ShopID, date.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Занятые окна мастера на эти сутки
	live, err := uc.windows.LiveWindows(ctx, staff.ID, date, date.AddDate(0, 0, 1), now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get live windows for staff=%s: %v", staff.ID, err)
		return nil, fmt.Errorf("%w: failed to get live windows: %v", ErrInternal, err)
	}

	// 7. Слоты
	resp.Slots = dropStarted(ComputeAvailableSlots(date, services.TotalDurationMinutes, hours, live), now)

	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%s, date=%s",
		len(resp.Slots), staff.ID, date.Format(domain.DateFormat))

	return resp, nil
}
