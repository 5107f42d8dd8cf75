package create_payment_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
)

// UseCase use case создания заказа у платежного провайдера для живого холда
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	provider     PaymentProvider
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	provider PaymentProvider,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		provider:     provider,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentOrder: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if req.BookingID == uuid.Nil {
		uc.logger.Warn("CreatePaymentOrder: validation failed: empty booking id")
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Холд должен быть живым
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreatePaymentOrder: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreatePaymentOrder: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsDeleted() || !booking.IsHold() {
		uc.logger.Warn("CreatePaymentOrder: booking id=%s is not a hold (status=%s)", booking.ID, booking.Status)
		return nil, ErrNotPending
	}
	if booking.IsExpiredAt(now) {
		uc.logger.Warn("CreatePaymentOrder: hold id=%s expired", booking.ID)
		return nil, ErrHoldExpired
	}
	if booking.TotalPrice <= 0 {
		uc.logger.Warn("CreatePaymentOrder: hold id=%s has nothing to pay", booking.ID)
		return nil, fmt.Errorf("%w: booking total is zero", ErrInvalidInput)
	}

	// 4. Заказ у провайдера
	order, err := uc.provider.CreateOrder(ctx, booking.TotalPrice, uc.currency, booking.ID.String())
	if err != nil {
		uc.logger.Error("CreatePaymentOrder: provider failed for booking=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	// 5. Запись платежа в статусе created
	payment, err := uc.paymentRepo.Create(ctx, &domain.Payment{
		BookingID:       &booking.ID,
		ProviderOrderID: order.ID,
		Amount:          booking.TotalPrice,
		Currency:        uc.currency,
		Status:          domain.PaymentCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		uc.logger.Error("CreatePaymentOrder: failed to store payment order=%s: %v", order.ID, err)
		return nil, fmt.Errorf("%w: failed to store payment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreatePaymentOrder: order=%s created for booking=%s amount=%.2f %s",
		order.ID, booking.ID, booking.TotalPrice, uc.currency)

	return &Response{
		PaymentID: payment.ID,
		OrderID:   order.ID,
		BookingID: booking.ID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		ExpiresAt: *booking.ExpiresAt,
	}, nil
}
