package reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservation: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или принадлежит другому магазину
	ErrServiceNotFound = errors.New("reservation: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден, неактивен или из другого магазина
	ErrStaffNotFound = errors.New("reservation: staff not found")

	// ErrStaffOnLeave возвращается, когда у мастера выходной в этот день
	ErrStaffOnLeave = errors.New("reservation: staff is on leave")

	// ErrOutsideWorkingHours возвращается, когда окно не помещается в рабочие часы магазина
	ErrOutsideWorkingHours = errors.New("reservation: outside working hours")

	// ErrAccessDenied возвращается, когда услуги принадлежат не магазину актора
	ErrAccessDenied = errors.New("reservation: access denied")

	// ErrSubscriptionInactive возвращается, когда Subscription Gate запрещает запись
	ErrSubscriptionInactive = errors.New("reservation: shop subscription is not active")

	// ErrSlotNotAvailable возвращается, когда окно уже занято живым бронированием
	ErrSlotNotAvailable = errors.New("reservation: slot not available")

	// ErrDuplicateIdempotencyKey возвращается, когда ключ идемпотентности уже занят параллельным запросом
	ErrDuplicateIdempotencyKey = errors.New("reservation: idempotency key already used")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservation: internal error")
)
