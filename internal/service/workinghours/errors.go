package workinghours

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("workinghours: shop not found")

	// ErrAccessDenied возвращается, когда актор не владеет магазином
	ErrAccessDenied = errors.New("workinghours: access denied")

	// ErrInvalidInput возвращается при некорректных рабочих часах
	ErrInvalidInput = errors.New("workinghours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("workinghours: internal error")
)
