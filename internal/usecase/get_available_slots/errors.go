package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = reservation.ErrServiceNotFound

	// ErrStaffNotFound возвращается, когда мастер не найден или не работает в магазине
	ErrStaffNotFound = reservation.ErrStaffNotFound

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = reservation.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_available_slots: internal error")
)
