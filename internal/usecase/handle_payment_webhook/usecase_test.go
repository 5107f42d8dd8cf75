package handle_payment_webhook

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) GetByProviderOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) MarkSettled(ctx context.Context, orderID string, status domain.PaymentStatus, paymentID *string, at time.Time) error {
	return m.Called(ctx, orderID, status, paymentID, at).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockConfirmer struct{ mock.Mock }

func (m *mockConfirmer) Execute(ctx context.Context, req *confirm_hold.Request) (*confirm_hold.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*confirm_hold.Response), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

const secret = "whsec_test"

type env struct {
	payments  *mockPaymentRepo
	bookings  *mockBookingRepo
	confirmer *mockConfirmer
	uc        *UseCase
}

func newEnv() *env {
	e := &env{payments: &mockPaymentRepo{}, bookings: &mockBookingRepo{}, confirmer: &mockConfirmer{}}
	parser := paymentprovider.NewClient("http://provider.invalid", "key", secret, time.Second)
	e.uc = NewUseCase(parser, e.payments, e.bookings, e.confirmer, logger.NewNop())
	e.uc.timeProvider = fixedTime{now}
	return e
}

func signed(body string) *Request {
	return &Request{
		Body:      []byte(body),
		Signature: hexSign(body),
	}
}

func hexSign(body string) string {
	return hex.EncodeToString(paymentprovider.Sign([]byte(secret), []byte(body)))
}

func TestExecute_PaidConfirmsHoldWithCustomer(t *testing.T) {
	e := newEnv()
	bookingID := uuid.New()
	payment := &domain.Payment{ID: uuid.New(), BookingID: &bookingID, ProviderOrderID: "ord_1", Amount: 300, Currency: "THB", Status: domain.PaymentCreated}
	hold := &domain.Booking{
		ID: bookingID, Status: domain.StatusPendingPayment, ExpiresAt: ptr.Ptr(now.Add(time.Minute)),
		CustomerName: "Anna", CustomerPhone: "123",
	}

	e.payments.On("GetByProviderOrderID", mock.Anything, "ord_1").Return(payment, nil)
	e.payments.On("MarkSettled", mock.Anything, "ord_1", domain.PaymentPaid, ptr.Ptr("pay_9"), now).Return(nil)
	e.bookings.On("GetByID", mock.Anything, bookingID).Return(hold, nil)
	e.confirmer.On("Execute", mock.Anything, mock.MatchedBy(func(r *confirm_hold.Request) bool {
		return r.BookingID == bookingID && r.CustomerName == "Anna" && r.Payment.ProviderOrderID == "ord_1"
	})).Return(&confirm_hold.Response{BookingID: bookingID, Status: "confirmed"}, nil)

	resp, err := e.uc.Execute(context.Background(), signed(`{"order_id":"ord_1","payment_id":"pay_9","status":"paid"}`))
	require.NoError(t, err)

	assert.True(t, resp.BookingConfirmed)
	assert.False(t, resp.Duplicate)
	e.confirmer.AssertExpectations(t)
}

func TestExecute_PaidHoldWithoutCustomerWaits(t *testing.T) {
	e := newEnv()
	bookingID := uuid.New()

	e.payments.On("GetByProviderOrderID", mock.Anything, "ord_1").
		Return(&domain.Payment{BookingID: &bookingID, ProviderOrderID: "ord_1", Status: domain.PaymentCreated}, nil)
	e.payments.On("MarkSettled", mock.Anything, "ord_1", domain.PaymentPaid, mock.Anything, now).Return(nil)
	e.bookings.On("GetByID", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, Status: domain.StatusPendingPayment, ExpiresAt: ptr.Ptr(now.Add(time.Minute))}, nil)

	resp, err := e.uc.Execute(context.Background(), signed(`{"order_id":"ord_1","status":"paid"}`))
	require.NoError(t, err)

	assert.False(t, resp.BookingConfirmed)
	e.confirmer.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestExecute_DuplicateFailedAfterPaidIsIgnored(t *testing.T) {
	e := newEnv()
	bookingID := uuid.New()

	e.payments.On("GetByProviderOrderID", mock.Anything, "ord_1").
		Return(&domain.Payment{BookingID: &bookingID, ProviderOrderID: "ord_1", Status: domain.PaymentPaid}, nil)
	e.payments.On("MarkSettled", mock.Anything, "ord_1", domain.PaymentFailed, mock.Anything, now).
		Return(paymentRepo.ErrStatusChanged)

	resp, err := e.uc.Execute(context.Background(), signed(`{"order_id":"ord_1","status":"failed"}`))
	require.NoError(t, err)

	assert.True(t, resp.Duplicate)
	assert.Equal(t, "paid", resp.PaymentStatus)
	e.bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestExecute_PaidAfterFailedConfirmsHold(t *testing.T) {
	e := newEnv()
	bookingID := uuid.New()
	payment := &domain.Payment{ID: uuid.New(), BookingID: &bookingID, ProviderOrderID: "ord_1", Amount: 300, Currency: "THB", Status: domain.PaymentFailed}
	hold := &domain.Booking{
		ID: bookingID, Status: domain.StatusPendingPayment, ExpiresAt: ptr.Ptr(now.Add(time.Minute)),
		CustomerName: "Anna", CustomerPhone: "123",
	}

	e.payments.On("GetByProviderOrderID", mock.Anything, "ord_1").Return(payment, nil)
	e.payments.On("MarkSettled", mock.Anything, "ord_1", domain.PaymentPaid, ptr.Ptr("pay_2"), now).Return(nil)
	e.bookings.On("GetByID", mock.Anything, bookingID).Return(hold, nil)
	e.confirmer.On("Execute", mock.Anything, mock.MatchedBy(func(r *confirm_hold.Request) bool {
		return r.BookingID == bookingID && *r.Payment.ProviderPaymentID == "pay_2"
	})).Return(&confirm_hold.Response{BookingID: bookingID, Status: "confirmed"}, nil)

	resp, err := e.uc.Execute(context.Background(), signed(`{"order_id":"ord_1","payment_id":"pay_2","status":"paid"}`))
	require.NoError(t, err)

	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.False(t, resp.Duplicate)
	assert.True(t, resp.BookingConfirmed)
	e.confirmer.AssertNumberOfCalls(t, "Execute", 1)
}

func TestExecute_ExpiredHoldIsNotConfirmed(t *testing.T) {
	e := newEnv()
	bookingID := uuid.New()

	e.payments.On("GetByProviderOrderID", mock.Anything, "ord_1").
		Return(&domain.Payment{BookingID: &bookingID, ProviderOrderID: "ord_1", Status: domain.PaymentCreated}, nil)
	e.payments.On("MarkSettled", mock.Anything, "ord_1", domain.PaymentPaid, mock.Anything, now).Return(nil)
	e.bookings.On("GetByID", mock.Anything, bookingID).Return(&domain.Booking{
		ID: bookingID, Status: domain.StatusPendingPayment, ExpiresAt: ptr.Ptr(now.Add(-time.Second)),
		CustomerName: "Anna", CustomerPhone: "123",
	}, nil)

	resp, err := e.uc.Execute(context.Background(), signed(`{"order_id":"ord_1","status":"paid"}`))
	require.NoError(t, err)

	assert.False(t, resp.BookingConfirmed)
	e.confirmer.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestExecute_RejectsBadInput(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), &Request{Body: []byte(`{"order_id":"ord_1","status":"paid"}`), Signature: "00"})
	assert.ErrorIs(t, err, ErrInvalidPaymentSignature)

	_, err = e.uc.Execute(context.Background(), signed(`{"order_id":"","status":"paid"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	e.payments.On("GetByProviderOrderID", mock.Anything, "ord_x").Return(nil, paymentRepo.ErrPaymentNotFound)
	_, err = e.uc.Execute(context.Background(), signed(`{"order_id":"ord_x","status":"paid"}`))
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
