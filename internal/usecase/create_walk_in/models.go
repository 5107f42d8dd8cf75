package create_walk_in

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на запись клиента, пришедшего без брони
type Request struct {
	ActorShopID   uuid.UUID // магазин сотрудника из X-Shop-ID
	StaffID       uuid.UUID
	ServiceIDs    []uuid.UUID
	StartTime     time.Time
	CustomerName  string
	CustomerPhone string
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID  uuid.UUID
	ShopID     uuid.UUID
	StaffID    uuid.UUID
	Status     string
	StartTime  time.Time
	EndTime    time.Time
	TotalPrice float64
}
