package broker

import (
	"time"

	"github.com/google/uuid"
)

// BookingEvent полезная нагрузка событий booking.*
type BookingEvent struct {
	BookingID  uuid.UUID  `json:"booking_id"`
	ShopID     uuid.UUID  `json:"shop_id"`
	StaffID    uuid.UUID  `json:"staff_id"`
	Status     string     `json:"status"`
	PrevStatus string     `json:"prev_status,omitempty"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsWalkIn   bool       `json:"is_walk_in"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// HoldsReapedEvent полезная нагрузка события holds.reaped
type HoldsReapedEvent struct {
	Count      int64     `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}
