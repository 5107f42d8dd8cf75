package reservation

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
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/shop"
	hoursRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/subscription"
	"github.com/m04kA/SMC-ShopBooking/internal/service/availability"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// понедельник
var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ReleaseExpiredHolds(ctx context.Context, staffID uuid.UUID, start, end, at time.Time) (int64, error) {
	args := m.Called(ctx, staffID, start, end, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type fakeShops struct {
	staff    map[uuid.UUID]*domain.Staff
	services map[uuid.UUID]*domain.Service
}

func (f *fakeShops) GetStaff(_ context.Context, id uuid.UUID) (*domain.Staff, error) {
	if s, ok := f.staff[id]; ok {
		return s, nil
	}
	return nil, shopRepo.ErrStaffNotFound
}

func (f *fakeShops) GetServicesByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeHours struct{ byDay map[int]*domain.WorkingHours }

func (f *fakeHours) GetByShopAndDay(_ context.Context, _ uuid.UUID, day int) (*domain.WorkingHours, error) {
	if h, ok := f.byDay[day]; ok {
		return h, nil
	}
	return nil, hoursRepo.ErrWorkingHoursNotFound
}

type gate struct{ allowed bool }

func (g gate) CheckAccess(context.Context, uuid.UUID) (*subscription.Access, error) {
	return &subscription.Access{Allowed: g.allowed, Reason: "trial ended"}, nil
}

type fakeChecker struct{ conflicts []*domain.Booking }

func (f fakeChecker) CheckAt(context.Context, uuid.UUID, time.Time, time.Time, time.Time) (*availability.Result, error) {
	return &availability.Result{Available: len(f.conflicts) == 0, Conflicts: f.conflicts}, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixture struct {
	shopID  uuid.UUID
	staff   *domain.Staff
	haircut *domain.Service
	beard   *domain.Service
	shops   *fakeShops
	hours   *fakeHours
}

func newFixture() *fixture {
	shopID := uuid.New()
	f := &fixture{
		shopID:  shopID,
		staff:   &domain.Staff{ID: uuid.New(), ShopID: shopID, IsActive: true},
		haircut: &domain.Service{ID: uuid.New(), ShopID: shopID, DurationMinutes: 30, Price: 300, IsActive: true},
		beard:   &domain.Service{ID: uuid.New(), ShopID: shopID, DurationMinutes: 15, Price: 150, IsActive: true},
	}
	f.shops = &fakeShops{
		staff:    map[uuid.UUID]*domain.Staff{f.staff.ID: f.staff},
		services: map[uuid.UUID]*domain.Service{f.haircut.ID: f.haircut, f.beard.ID: f.beard},
	}
	f.hours = &fakeHours{byDay: map[int]*domain.WorkingHours{
		int(time.Monday): {
			ShopID:    shopID,
			DayOfWeek: int(time.Monday),
			OpenTime:  ptr.Ptr(types.TimeString("09:00:00")),
			CloseTime: ptr.Ptr(types.TimeString("18:00:00")),
		},
	}}
	return f
}

func (f *fixture) service(repo BookingRepository, allowed bool, checker AvailabilityChecker) *Service {
	return NewService(repo, f.shops, f.hours, gate{allowed}, checker, inlineTx{}, logger.NewNop())
}

func (f *fixture) request(hour int) *Request {
	return &Request{
		StaffID:    f.staff.ID,
		ServiceIDs: []uuid.UUID{f.haircut.ID, f.beard.ID},
		StartTime:  time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC),
	}
}

func TestPrepare_SumsServices(t *testing.T) {
	f := newFixture()

	draft, err := f.service(&mockBookingRepo{}, true, fakeChecker{}).Prepare(context.Background(), f.request(10), now)
	require.NoError(t, err)

	assert.Equal(t, f.shopID, draft.ShopID)
	assert.Equal(t, 45, draft.TotalDurationMinutes)
	assert.Equal(t, 450.0, draft.TotalPrice)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 45, 0, 0, time.UTC), draft.EndTime)
	assert.Equal(t, f.haircut.ID, draft.Booking(domain.StatusPendingPayment).ServiceID)
}

func TestPrepare_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture, req *Request)
		allowed bool
		checker fakeChecker
		wantErr error
	}{
		{
			name:    "unknown service",
			mutate:  func(_ *fixture, req *Request) { req.ServiceIDs = []uuid.UUID{uuid.New()} },
			allowed: true,
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "inactive service",
			mutate:  func(f *fixture, _ *Request) { f.beard.IsActive = false },
			allowed: true,
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "services of different shops",
			mutate:  func(f *fixture, _ *Request) { f.beard.ShopID = uuid.New() },
			allowed: true,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "staff of another shop",
			mutate:  func(f *fixture, _ *Request) { f.staff.ShopID = uuid.New() },
			allowed: true,
			wantErr: ErrStaffNotFound,
		},
		{
			name:    "staff on leave",
			mutate:  func(f *fixture, _ *Request) { f.staff.LeaveDate = ptr.Ptr(now) },
			allowed: true,
			wantErr: ErrStaffOnLeave,
		},
		{
			name:    "ends after closing",
			mutate:  func(_ *fixture, req *Request) { req.StartTime = time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC) },
			allowed: true,
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name:    "closed day",
			mutate:  func(_ *fixture, req *Request) { req.StartTime = req.StartTime.AddDate(0, 0, 1) },
			allowed: true,
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name:    "subscription inactive",
			mutate:  func(*fixture, *Request) {},
			allowed: false,
			wantErr: ErrSubscriptionInactive,
		},
		{
			name:    "slot taken",
			mutate:  func(*fixture, *Request) {},
			allowed: true,
			checker: fakeChecker{conflicts: []*domain.Booking{{ID: uuid.New()}}},
			wantErr: ErrSlotNotAvailable,
		},
		{
			name:    "actor of another shop",
			mutate:  func(_ *fixture, req *Request) { req.ShopID = ptr.Ptr(uuid.New()) },
			allowed: true,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "start in the past",
			mutate:  func(_ *fixture, req *Request) { req.StartTime = now.Add(-time.Minute) },
			allowed: true,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate service",
			mutate:  func(f *fixture, req *Request) { req.ServiceIDs = []uuid.UUID{f.beard.ID, f.beard.ID} },
			allowed: true,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := f.request(10)
			tt.mutate(f, req)

			_, err := f.service(&mockBookingRepo{}, tt.allowed, tt.checker).Prepare(context.Background(), req, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInsert_ReleasesExpiredHoldsFirst(t *testing.T) {
	f := newFixture()
	repo := &mockBookingRepo{}
	b := &domain.Booking{StaffID: f.staff.ID, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)}
	created := *b
	created.ID = uuid.New()

	repo.On("ReleaseExpiredHolds", mock.Anything, b.StaffID, b.StartTime, b.EndTime, now).Return(int64(1), nil).Once()
	repo.On("Create", mock.Anything, b).Return(&created, nil).Once()

	got, err := f.service(repo, true, fakeChecker{}).Insert(context.Background(), b, now)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	repo.AssertExpectations(t)
}

func TestInsert_MapsStorageErrors(t *testing.T) {
	tests := []struct {
		repoErr error
		wantErr error
	}{
		{fmtWrap(bookingRepo.ErrSlotNotAvailable), ErrSlotNotAvailable},
		{fmtWrap(bookingRepo.ErrDuplicateIdempotencyKey), ErrDuplicateIdempotencyKey},
		{fmtWrap(bookingRepo.ErrExecQuery), ErrInternal},
	}

	for _, tt := range tests {
		f := newFixture()
		repo := &mockBookingRepo{}
		repo.On("ReleaseExpiredHolds", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, tt.repoErr)

		_, err := f.service(repo, true, fakeChecker{}).Insert(context.Background(), &domain.Booking{StaffID: f.staff.ID}, now)
		assert.ErrorIs(t, err, tt.wantErr)
	}
}

func fmtWrap(err error) error {
	return errors.Join(err, errors.New("pq: detail"))
}
