package create_payment_order

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_payment_order: booking not found")

	// ErrNotPending возвращается, когда бронирование уже не холд
	ErrNotPending = errors.New("create_payment_order: booking is no longer pending payment")

	// ErrHoldExpired возвращается, когда срок холда истек
	ErrHoldExpired = errors.New("create_payment_order: hold has expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment_order: invalid input data")

	// ErrPaymentProvider возвращается, когда провайдер не создал заказ
	ErrPaymentProvider = errors.New("create_payment_order: payment provider error")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_payment_order: internal error")
)
