package confirm_hold

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_hold: booking not found")

	// ErrNotPending возвращается, когда бронирование уже не в pending_payment
	// (подтверждено параллельным запросом или удалено reaper'ом)
	ErrNotPending = errors.New("confirm_hold: booking is no longer pending payment")

	// ErrHoldExpired возвращается, когда срок холда истек
	ErrHoldExpired = errors.New("confirm_hold: hold has expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("confirm_hold: internal error")
)
