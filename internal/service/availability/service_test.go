package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) ListByStaffStartingBetween(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, staffID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func booking(status domain.BookingStatus, start, end time.Time, expiresAt *time.Time) *domain.Booking {
	return &domain.Booking{ID: uuid.New(), Status: status, StartTime: start, EndTime: end, ExpiresAt: expiresAt}
}

func TestFindConflicts_ExpiredHoldNeverBlocks(t *testing.T) {
	expired := booking(domain.StatusPendingPayment, at(9, 0), at(9, 30), ptr.Ptr(now.Add(-time.Second)))
	atNow := booking(domain.StatusPendingPayment, at(9, 0), at(9, 30), ptr.Ptr(now))
	live := booking(domain.StatusPendingPayment, at(9, 0), at(9, 30), ptr.Ptr(now.Add(time.Minute)))

	assert.Empty(t, FindConflicts([]*domain.Booking{expired, atNow}, at(9, 0), at(9, 30), now))
	assert.Equal(t, []*domain.Booking{live}, FindConflicts([]*domain.Booking{expired, live}, at(9, 0), at(9, 30), now))
}

func TestFindConflicts_StatusesAndOverlap(t *testing.T) {
	confirmed := booking(domain.StatusConfirmed, at(9, 0), at(9, 30), nil)
	seated := booking(domain.StatusSeated, at(10, 0), at(10, 30), nil)
	completed := booking(domain.StatusCompleted, at(11, 0), at(11, 30), nil)
	canceled := booking(domain.StatusCanceled, at(9, 0), at(12, 0), nil)
	noShow := booking(domain.StatusNoShow, at(9, 0), at(12, 0), nil)
	all := []*domain.Booking{confirmed, seated, completed, canceled, noShow}

	assert.Len(t, FindConflicts(all, at(9, 0), at(12, 0), now), 3)
	assert.Empty(t, FindConflicts(all, at(9, 30), at(10, 0), now), "adjacent windows do not overlap")
	assert.Equal(t, []*domain.Booking{seated}, FindConflicts(all, at(10, 15), at(10, 45), now))
}

func TestChecker_Check(t *testing.T) {
	repo := &mockBookingRepo{}
	staffID := uuid.New()
	start, end := at(9, 0), at(9, 30)
	blocking := booking(domain.StatusConfirmed, at(9, 15), at(9, 45), nil)

	repo.On("ListByStaffStartingBetween", mock.Anything, staffID, start.Add(-domain.ConflictLookback), end).
		Return([]*domain.Booking{blocking}, nil)

	checker := NewChecker(repo, logger.NewNop()).WithTimeProvider(fixedTime{now})
	res, err := checker.Check(context.Background(), staffID, start, end)
	require.NoError(t, err)

	assert.False(t, res.Available)
	assert.Equal(t, blocking.ID, res.Conflicts[0].ID)
	repo.AssertExpectations(t)
}

func TestChecker_Errors(t *testing.T) {
	repo := &mockBookingRepo{}
	checker := NewChecker(repo, logger.NewNop()).WithTimeProvider(fixedTime{now})

	_, err := checker.Check(context.Background(), uuid.New(), at(9, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	repo.On("ListByStaffStartingBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))
	_, err = checker.Check(context.Background(), uuid.New(), at(9, 0), at(9, 30))
	assert.ErrorIs(t, err, ErrInternal)
}
