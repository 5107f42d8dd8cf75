package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// TransitionRequest запрос персонала на смену статуса
type TransitionRequest struct {
	BookingID   uuid.UUID
	Status      string
	ActorShopID uuid.UUID
}

// DailyCalendarRequest запрос календаря магазина на день
type DailyCalendarRequest struct {
	ShopID      uuid.UUID
	ActorShopID uuid.UUID
	Date        time.Time
	StaffID     *uuid.UUID
	Status      *string
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                   string   `json:"id"`
	ShopID               string   `json:"shopId"`
	StaffID              string   `json:"staffId"`
	ServiceID            string   `json:"serviceId"`
	ServiceIDs           []string `json:"serviceIds"`
	CustomerName         string   `json:"customerName"`
	CustomerPhone        string   `json:"customerPhone"`
	StartTime            string   `json:"startTime"` // ISO 8601 UTC
	EndTime              string   `json:"endTime"`
	Status               string   `json:"status"`
	ExpiresAt            *string  `json:"expiresAt,omitempty"`
	IsWalkIn             bool     `json:"isWalkIn"`
	TotalPrice           float64  `json:"totalPrice"`
	TotalDurationMinutes int      `json:"totalDurationMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	serviceIDs := make([]string, len(b.ServiceIDs))
	for i, id := range b.ServiceIDs {
		serviceIDs[i] = id.String()
	}

	resp := &BookingResponse{
		ID:                   b.ID.String(),
		ShopID:               b.ShopID.String(),
		StaffID:              b.StaffID.String(),
		ServiceID:            b.ServiceID.String(),
		ServiceIDs:           serviceIDs,
		CustomerName:         b.CustomerName,
		CustomerPhone:        b.CustomerPhone,
		StartTime:            b.StartTime.UTC().Format(time.RFC3339),
		EndTime:              b.EndTime.UTC().Format(time.RFC3339),
		Status:               string(b.Status),
		IsWalkIn:             b.IsWalkIn,
		TotalPrice:           b.TotalPrice,
		TotalDurationMinutes: b.TotalDurationMinutes,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if b.ExpiresAt != nil {
		expires := b.ExpiresAt.UTC().Format(time.RFC3339)
		resp.ExpiresAt = &expires
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
