package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shop is the tenant root
type Shop struct {
	ID             uuid.UUID
	Name           string
	IsActive       bool
	SubscriptionID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// Staff is a member of a shop who can be booked
type Staff struct {
	ID        uuid.UUID
	ShopID    uuid.UUID
	Name      string
	IsActive  bool
	LeaveDate *time.Time // staff is unavailable for the whole day
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOnLeave returns true if the leave date is the same calendar day (UTC) as date
func (s *Staff) IsOnLeave(date time.Time) bool {
	if s.LeaveDate == nil {
		return false
	}
	ly, lm, ld := s.LeaveDate.UTC().Date()
	y, m, d := date.UTC().Date()
	return ly == y && lm == m && ld == d
}

// Service is a bookable service of a shop
type Service struct {
	ID              uuid.UUID
	ShopID          uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}
