package create_hold

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание холда
type Request struct {
	StaffID        uuid.UUID
	ServiceIDs     []uuid.UUID
	StartTime      time.Time
	CustomerName   string  // может быть пустым, заполняется при подтверждении
	CustomerPhone  string  // может быть пустым, заполняется при подтверждении
	IdempotencyKey *string // заголовок Idempotency-Key
}

// Response модель ответа с созданным холдом
type Response struct {
	BookingID            uuid.UUID
	ShopID               uuid.UUID
	StaffID              uuid.UUID
	StartTime            time.Time
	EndTime              time.Time
	ExpiresAt            time.Time
	TotalPrice           float64
	TotalDurationMinutes int
	Replayed             bool // ответ на повтор запроса с тем же ключом
}
