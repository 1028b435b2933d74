package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии бронирования
	ErrInvalidState = errors.New("invalid booking state")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований пользователя
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	State      *string `json:"state,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string    `json:"id"`
	CustomerID   int64     `json:"customerId"`
	SlotID       string    `json:"slotId"`
	State        string    `json:"state"`
	SlotStartsAt time.Time `json:"slotStartsAt"`
	SlotEndsAt   time.Time `json:"slotEndsAt"`

	PriceMinorUnits int64  `json:"priceMinorUnits"`
	Currency        string `json:"currency"`

	AddOnIDs []string `json:"addOnIds,omitempty"`

	CancellationFeeMinorUnits *int64  `json:"cancellationFeeMinorUnits,omitempty"`
	CancellationReason        *string `json:"cancellationReason,omitempty"`
	CancelledAt               *string `json:"cancelledAt,omitempty"` // ISO 8601
	CheckedInAt               *string `json:"checkedInAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID             string    `json:"id"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	Capacity       int       `json:"capacity"`
	AvailableSpots int       `json:"availableSpots"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID.String(),
		CustomerID:         b.CustomerID,
		SlotID:             b.SlotID.String(),
		State:              string(b.State),
		SlotStartsAt:       b.SlotStartsAt,
		SlotEndsAt:         b.SlotEndsAt,
		PriceMinorUnits:    b.Price.Amount,
		Currency:           b.Price.Currency,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, addOn := range b.AddOns {
		resp.AddOnIDs = append(resp.AddOnIDs, addOn.ID)
	}

	if b.CancellationFee != nil {
		fee := b.CancellationFee.Amount
		resp.CancellationFeeMinorUnits = &fee
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if b.CheckedInAt != nil {
		checkedInStr := b.CheckedInAt.Format(time.RFC3339)
		resp.CheckedInAt = &checkedInStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// FromDomainSlot конвертирует слот в DTO
func FromDomainSlot(s *domain.ScheduleSlot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:             s.ID.String(),
		StartsAt:       s.Time.Start,
		EndsAt:         s.Time.End,
		Capacity:       s.Capacity,
		AvailableSpots: s.AvailableSpots(),
	}
}

// ToDomainBookingState конвертирует строку в domain.BookingState с валидацией
func ToDomainBookingState(state string) (domain.BookingState, error) {
	s := domain.BookingState(state)

	validStates := []domain.BookingState{
		domain.StateDraft,
		domain.StateConfirmed,
		domain.StateCanceled,
		domain.StateCompleted,
		domain.StateNoShow,
	}

	for _, valid := range validStates {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidState
}
