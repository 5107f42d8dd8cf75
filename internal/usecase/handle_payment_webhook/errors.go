package handle_payment_webhook

import "errors"

var (
	// ErrInvalidPaymentSignature возвращается, когда подпись вебхука не совпала
	ErrInvalidPaymentSignature = errors.New("handle_payment_webhook: invalid signature")

	// ErrInvalidInput возвращается, когда событие не разобрано
	ErrInvalidInput = errors.New("handle_payment_webhook: invalid event")

	// ErrPaymentNotFound возвращается, когда заказ провайдера нам неизвестен
	ErrPaymentNotFound = errors.New("handle_payment_webhook: payment not found")

	// ErrInternal возвращается при внутренних ошибках, провайдер повторит доставку
	ErrInternal = errors.New("handle_payment_webhook: internal error")
)
