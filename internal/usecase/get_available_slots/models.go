package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID     uuid.UUID   // магазин из пути запроса
	StaffID    uuid.UUID   // мастер
	ServiceIDs []uuid.UUID // услуги, длительности суммируются
	Date       time.Time   // дата (UTC, время отбрасывается)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ShopID          uuid.UUID
	StaffID         uuid.UUID
	DurationMinutes int
	Slots           []domain.Slot
}
