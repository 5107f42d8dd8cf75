package broker

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish возвращается, когда сообщение не опубликовано
	ErrPublish = errors.New("broker: failed to publish")
)
