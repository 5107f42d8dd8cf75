package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

type mockReservations struct{ mock.Mock }

func (m *mockReservations) LoadServices(ctx context.Context, ids []uuid.UUID) (*reservation.ServiceSet, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ServiceSet), args.Error(1)
}

func (m *mockReservations) LoadStaff(ctx context.Context, staffID, shopID uuid.UUID) (*domain.Staff, error) {
	args := m.Called(ctx, staffID, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockReservations) WorkingHoursFor(ctx context.Context, shopID uuid.UUID, date time.Time) (*domain.WorkingHours, error) {
	args := m.Called(ctx, shopID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkingHours), args.Error(1)
}

type mockWindows struct{ mock.Mock }

func (m *mockWindows) LiveWindows(ctx context.Context, staffID uuid.UUID, from, to, at time.Time) ([]domain.TimeWindow, error) {
	args := m.Called(ctx, staffID, from, to, at)
	return args.Get(0).([]domain.TimeWindow), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newUseCase(r Reservations, w LiveWindowsProvider, now time.Time) *UseCase {
	uc := NewUseCase(r, w, logger.NewNop())
	uc.timeProvider = fixedTime{now}
	return uc
}

func TestExecute_ReturnsFreeSlots(t *testing.T) {
	shopID, staffID, serviceID := uuid.New(), uuid.New(), uuid.New()
	reservations := &mockReservations{}
	windows := &mockWindows{}

	reservations.On("LoadServices", mock.Anything, []uuid.UUID{serviceID}).
		Return(&reservation.ServiceSet{ShopID: shopID, IDs: []uuid.UUID{serviceID}, TotalDurationMinutes: 30}, nil)
	reservations.On("LoadStaff", mock.Anything, staffID, shopID).
		Return(&domain.Staff{ID: staffID, ShopID: shopID, IsActive: true}, nil)
	reservations.On("WorkingHoursFor", mock.Anything, shopID, day).Return(hoursOf("09:00:00", "10:00:00"), nil)
	windows.On("LiveWindows", mock.Anything, staffID, day, day.AddDate(0, 0, 1), mock.Anything).
		Return([]domain.TimeWindow{{Start: clock(9, 30), End: clock(10, 0)}}, nil)

	resp, err := newUseCase(reservations, windows, day.Add(-time.Hour)).Execute(context.Background(), &Request{
		ShopID: shopID, StaffID: staffID, ServiceIDs: []uuid.UUID{serviceID}, Date: day.Add(13 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, day, resp.Date)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []domain.Slot{slot(9, 0, 9, 30)}, resp.Slots)
	windows.AssertExpectations(t)
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	shopID, staffID, serviceID := uuid.New(), uuid.New(), uuid.New()
	reservations := &mockReservations{}
	windows := &mockWindows{}

	reservations.On("LoadServices", mock.Anything, mock.Anything).
		Return(&reservation.ServiceSet{ShopID: shopID, TotalDurationMinutes: 30}, nil)
	reservations.On("LoadStaff", mock.Anything, staffID, shopID).Return(&domain.Staff{ID: staffID, ShopID: shopID, IsActive: true}, nil)
	reservations.On("WorkingHoursFor", mock.Anything, shopID, day).Return(hoursOf("09:00:00", "10:00:00"), nil)
	windows.On("LiveWindows", mock.Anything, staffID, mock.Anything, mock.Anything, mock.Anything).Return([]domain.TimeWindow{}, nil)

	resp, err := newUseCase(reservations, windows, clock(9, 20)).Execute(context.Background(), &Request{
		ShopID: shopID, StaffID: staffID, ServiceIDs: []uuid.UUID{serviceID}, Date: day,
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Slot{slot(9, 30, 10, 0)}, resp.Slots)
}

func TestExecute_StaffOnLeaveHasNoSlots(t *testing.T) {
	shopID, staffID := uuid.New(), uuid.New()
	reservations := &mockReservations{}
	windows := &mockWindows{}

	reservations.On("LoadServices", mock.Anything, mock.Anything).
		Return(&reservation.ServiceSet{ShopID: shopID, TotalDurationMinutes: 30}, nil)
	reservations.On("LoadStaff", mock.Anything, staffID, shopID).
		Return(&domain.Staff{ID: staffID, ShopID: shopID, IsActive: true, LeaveDate: ptr.Ptr(day.Add(6 * time.Hour))}, nil)

	resp, err := newUseCase(reservations, windows, day).Execute(context.Background(), &Request{
		ShopID: shopID, StaffID: staffID, ServiceIDs: []uuid.UUID{uuid.New()}, Date: day,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	windows.AssertNotCalled(t, "LiveWindows", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	shopID := uuid.New()

	t.Run("past date", func(t *testing.T) {
		_, err := newUseCase(&mockReservations{}, &mockWindows{}, day).Execute(context.Background(), &Request{
			ShopID: shopID, StaffID: uuid.New(), ServiceIDs: []uuid.UUID{uuid.New()}, Date: day.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("no services", func(t *testing.T) {
		_, err := newUseCase(&mockReservations{}, &mockWindows{}, day).Execute(context.Background(), &Request{
			ShopID: shopID, StaffID: uuid.New(), Date: day,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("services of another shop", func(t *testing.T) {
		reservations := &mockReservations{}
		reservations.On("LoadServices", mock.Anything, mock.Anything).
			Return(&reservation.ServiceSet{ShopID: uuid.New(), TotalDurationMinutes: 30}, nil)

		_, err := newUseCase(reservations, &mockWindows{}, day).Execute(context.Background(), &Request{
			ShopID: shopID, StaffID: uuid.New(), ServiceIDs: []uuid.UUID{uuid.New()}, Date: day,
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
