package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или удалено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда магазин актора не владеет бронированием
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrSubscriptionInactive возвращается, когда подписка магазина не дает права менять бронирования
	ErrSubscriptionInactive = errors.New("bookings: shop subscription is not active")

	// ErrIllegalTransition возвращается, когда переход запрещен таблицей переходов
	ErrIllegalTransition = errors.New("bookings: illegal status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
