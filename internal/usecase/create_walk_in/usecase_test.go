package create_walk_in

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type mockReservations struct{ mock.Mock }

func (m *mockReservations) Prepare(ctx context.Context, req *reservation.Request, at time.Time) (*reservation.Draft, error) {
	args := m.Called(ctx, req, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Draft), args.Error(1)
}

func (m *mockReservations) Insert(ctx context.Context, b *domain.Booking, at time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, b, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type recordingPublisher struct{ events []broker.BookingEvent }

func (p *recordingPublisher) PublishJSON(_ context.Context, _ string, v any) error {
	p.events = append(p.events, v.(broker.BookingEvent))
	return nil
}

type nopMetrics struct{}

func (nopMetrics) IncBookingOperation(string, string) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newUseCase(r Reservations, pub EventPublisher) *UseCase {
	uc := NewUseCase(r, pub, nopMetrics{}, logger.NewNop())
	uc.timeProvider = fixedTime{now}
	return uc
}

func TestExecute_CreatesConfirmedWalkIn(t *testing.T) {
	shopID, staffID, serviceID := uuid.New(), uuid.New(), uuid.New()
	reservations := &mockReservations{}
	pub := &recordingPublisher{}
	draft := &reservation.Draft{
		ShopID: shopID, StaffID: staffID, ServiceIDs: []uuid.UUID{serviceID},
		StartTime: now, EndTime: now.Add(30 * time.Minute), TotalPrice: 300, TotalDurationMinutes: 30,
	}

	reservations.On("Prepare", mock.Anything, mock.MatchedBy(func(r *reservation.Request) bool {
		return r.ShopID != nil && *r.ShopID == shopID && r.StaffID == staffID
	}), now).Return(draft, nil)
	reservations.On("Insert", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusConfirmed && b.IsWalkIn && b.ExpiresAt == nil && b.CustomerName == "Somchai"
	}), now).Return(&domain.Booking{
		ID: uuid.New(), ShopID: shopID, StaffID: staffID, Status: domain.StatusConfirmed, IsWalkIn: true,
		StartTime: draft.StartTime, EndTime: draft.EndTime, TotalPrice: 300,
	}, nil)

	resp, err := newUseCase(reservations, pub).Execute(context.Background(), &Request{
		ActorShopID: shopID, StaffID: staffID, ServiceIDs: []uuid.UUID{serviceID},
		StartTime: now, CustomerName: " Somchai ", CustomerPhone: "0812345678",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, pub.events, 1)
	assert.True(t, pub.events[0].IsWalkIn)
	reservations.AssertExpectations(t)
}

func TestExecute_PropagatesReservationErrors(t *testing.T) {
	for _, wantErr := range []error{ErrAccessDenied, ErrSlotNotAvailable, ErrSubscriptionInactive} {
		reservations := &mockReservations{}
		reservations.On("Prepare", mock.Anything, mock.Anything, now).Return(nil, wantErr)

		_, err := newUseCase(reservations, &recordingPublisher{}).Execute(context.Background(), &Request{
			ActorShopID: uuid.New(), StaffID: uuid.New(), ServiceIDs: []uuid.UUID{uuid.New()},
			StartTime: now, CustomerName: "A", CustomerPhone: "1",
		})
		assert.ErrorIs(t, err, wantErr)
		reservations.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestExecute_RequiresCustomer(t *testing.T) {
	_, err := newUseCase(&mockReservations{}, &recordingPublisher{}).Execute(context.Background(), &Request{
		ActorShopID: uuid.New(), StaffID: uuid.New(), ServiceIDs: []uuid.UUID{uuid.New()}, StartTime: now,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
