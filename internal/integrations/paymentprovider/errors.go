package paymentprovider

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("paymentprovider client: invalid response")

	// ErrInvalidSignature возвращается, когда подпись вебхука не совпала
	ErrInvalidSignature = errors.New("paymentprovider: invalid webhook signature")

	// ErrInvalidEvent возвращается, когда тело вебхука не разобрано
	ErrInvalidEvent = errors.New("paymentprovider: invalid webhook event")
)
