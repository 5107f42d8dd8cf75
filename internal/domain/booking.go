package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusSeated         BookingStatus = "seated"
	StatusCompleted      BookingStatus = "completed"
	StatusNoShow         BookingStatus = "no_show"
	StatusCanceled       BookingStatus = "canceled"
)

// Booking is a reservation of one staff member for a time window.
// A booking in pending_payment is a hold and blocks its window only until ExpiresAt.
type Booking struct {
	ID            uuid.UUID
	ShopID        uuid.UUID
	StaffID       uuid.UUID
	ServiceID     uuid.UUID // primary service
	ServiceIDs    []uuid.UUID
	CustomerName  string
	CustomerPhone string

	StartTime time.Time
	EndTime   time.Time

	Status    BookingStatus
	ExpiresAt *time.Time
	IsWalkIn  bool

	TotalPrice           float64
	TotalDurationMinutes int
	IdempotencyKey       *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted returns true if the booking was soft-deleted
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}

// IsHold returns true if the booking is still waiting for payment
func (b *Booking) IsHold() bool {
	return b.Status == StatusPendingPayment
}

// IsExpiredAt returns true for a hold whose expiry is at or before now
func (b *Booking) IsExpiredAt(now time.Time) bool {
	if !b.IsHold() {
		return false
	}
	return b.ExpiresAt == nil || !b.ExpiresAt.After(now)
}

// IsLiveAt returns true if the booking blocks its window at the given instant
func (b *Booking) IsLiveAt(now time.Time) bool {
	if b.IsDeleted() {
		return false
	}
	switch b.Status {
	case StatusConfirmed, StatusSeated, StatusCompleted:
		return true
	case StatusPendingPayment:
		return !b.IsExpiredAt(now)
	default:
		return false
	}
}

// Window returns the half-open interval occupied by the booking
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}

// HasCustomer returns true if both customer name and phone are filled
func (b *Booking) HasCustomer() bool {
	return b.CustomerName != "" && b.CustomerPhone != ""
}

// ShopBookingsFilter filter for the daily calendar of a shop
type ShopBookingsFilter struct {
	ShopID  uuid.UUID
	From    time.Time
	To      time.Time
	StaffID *uuid.UUID
	Status  *BookingStatus
}
