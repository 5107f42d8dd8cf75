package config

import "errors"

var (
	// ErrReadConfig возвращается, когда конфигурацию не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read configuration")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
