package availability

import "errors"

var (
	// ErrInvalidWindow возвращается, когда конец окна не позже начала
	ErrInvalidWindow = errors.New("availability: invalid time window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
