package create_hold

import (
	"errors"

	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = reservation.ErrInvalidInput

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = reservation.ErrServiceNotFound

	// ErrStaffNotFound возвращается, когда мастер не найден или не работает в магазине
	ErrStaffNotFound = reservation.ErrStaffNotFound

	// ErrStaffOnLeave возвращается, когда у мастера выходной
	ErrStaffOnLeave = reservation.ErrStaffOnLeave

	// ErrOutsideWorkingHours возвращается, когда окно не помещается в рабочие часы
	ErrOutsideWorkingHours = reservation.ErrOutsideWorkingHours

	// ErrSubscriptionInactive возвращается, когда подписка магазина неактивна
	ErrSubscriptionInactive = reservation.ErrSubscriptionInactive

	// ErrSlotNotAvailable возвращается, когда окно занято (проверка или exclusion constraint)
	ErrSlotNotAvailable = reservation.ErrSlotNotAvailable

	// ErrIdempotencyConflict возвращается, когда ключ уже использован для другого окна
	ErrIdempotencyConflict = errors.New("create_hold: idempotency key reused with different parameters")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_hold: internal error")
)
