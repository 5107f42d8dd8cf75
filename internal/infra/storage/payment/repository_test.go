package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestMarkSettled(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = $1, provider_payment_id = $2, updated_at = $3 WHERE provider_order_id = $4 AND status IN ($5,$6)")).
		WithArgs(domain.PaymentPaid, "pay_1", now, "order_1", domain.PaymentCreated, domain.PaymentFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSettled(context.Background(), "order_1", domain.PaymentPaid, ptr.Ptr("pay_1"), now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSettled_FailedOnlyFromCreated(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE provider_order_id = $4 AND status IN ($5)")).
		WithArgs(domain.PaymentFailed, nil, now, "order_1", domain.PaymentCreated).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSettled(context.Background(), "order_1", domain.PaymentFailed, nil, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSettled_DuplicateWebhook(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE payments").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkSettled(context.Background(), "order_1", domain.PaymentPaid, nil, now)
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestGetByProviderOrderID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM payments").WillReturnRows(sqlmock.NewRows(paymentColumns))

	_, err := repo.GetByProviderOrderID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestUpsertPaid(t *testing.T) {
	repo, mock := newRepo(t)
	bookingID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (provider_order_id) DO UPDATE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errors.New("connection reset"))

	p := &domain.Payment{BookingID: &bookingID, ProviderOrderID: "order_1", Amount: 300, Currency: "THB", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.UpsertPaid(context.Background(), p))
	assert.NotEqual(t, uuid.Nil, p.ID)

	err := repo.UpsertPaid(context.Background(), &domain.Payment{ProviderOrderID: "order_2"})
	assert.ErrorIs(t, err, ErrExecQuery)
}
