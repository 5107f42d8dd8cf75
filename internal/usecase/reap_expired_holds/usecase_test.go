package reap_expired_holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) SoftDeleteExpiredHolds(ctx context.Context, at time.Time) (int64, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) CountExpiredHolds(ctx context.Context, at time.Time) (int64, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(int64), args.Error(1)
}

type recordingPublisher struct{ events []any }

func (p *recordingPublisher) PublishJSON(_ context.Context, _ string, v any) error {
	p.events = append(p.events, v)
	return nil
}

type recordingMetrics struct {
	reaped  int64
	expired int64
}

func (m *recordingMetrics) AddHoldsReaped(n int64)  { m.reaped += n }
func (m *recordingMetrics) SetExpiredHolds(n int64) { m.expired = n }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newUseCase(repo *mockBookingRepo, pub *recordingPublisher, m *recordingMetrics) *UseCase {
	uc := NewUseCase(repo, pub, m, logger.NewNop())
	uc.timeProvider = fixedTime{now}
	return uc
}

func TestExecute_IsRepeatable(t *testing.T) {
	repo := &mockBookingRepo{}
	pub := &recordingPublisher{}
	metrics := &recordingMetrics{}

	repo.On("SoftDeleteExpiredHolds", mock.Anything, now).Return(int64(3), nil).Once()
	repo.On("SoftDeleteExpiredHolds", mock.Anything, now).Return(int64(0), nil).Once()

	uc := newUseCase(repo, pub, metrics)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), first.Cleaned)
	assert.Equal(t, int64(0), second.Cleaned)
	assert.Equal(t, int64(3), metrics.reaped)
	assert.Equal(t, []any{broker.HoldsReapedEvent{Count: 3, OccurredAt: now}}, pub.events)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("SoftDeleteExpiredHolds", mock.Anything, now).Return(int64(0), errors.New("timeout"))

	_, err := newUseCase(repo, &recordingPublisher{}, &recordingMetrics{}).Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCount_UpdatesGauge(t *testing.T) {
	repo := &mockBookingRepo{}
	metrics := &recordingMetrics{}
	repo.On("CountExpiredHolds", mock.Anything, now).Return(int64(7), nil)

	resp, err := newUseCase(repo, &recordingPublisher{}, metrics).Count(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.Count)
	assert.Equal(t, int64(7), metrics.expired)
}
