package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingState represents the lifecycle state of a booking
type BookingState string

const (
	StateDraft     BookingState = "draft"
	StateConfirmed BookingState = "confirmed"
	StateCanceled  BookingState = "canceled"
	StateCompleted BookingState = "completed"
	StateNoShow    BookingState = "no_show"
)

// Booking represents a seat booking in the system.
// After creation the only permitted mutation path is a state machine
// transition; canceled/completed/no-show bookings are terminal records
// retained for audit and never deleted.
type Booking struct {
	ID         uuid.UUID
	CustomerID int64
	SlotID     uuid.UUID
	State      BookingState

	// Reservation token that holds the slot capacity for this booking
	ReservationID uuid.UUID

	// Denormalized slot window for lifecycle checks and history
	SlotStartsAt time.Time
	SlotEndsAt   time.Time

	Price  Money
	AddOns []AddOn

	CancellationFee    *Money
	CancellationReason *string
	CancelledAt        *time.Time
	CheckedInAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is allowed from the
// booking's current state.
func (b *Booking) IsTerminal() bool {
	return b.State == StateCanceled || b.State == StateCompleted || b.State == StateNoShow
}

// CanBeCancelled returns true if the booking can be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.State == StateDraft || b.State == StateConfirmed
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.State == StateCanceled
}

// IsCheckedIn returns true if attendance was marked for the booking.
func (b *Booking) IsCheckedIn() bool {
	return b.CheckedInAt != nil
}

// Clone returns an independent deep copy of the booking.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.AddOns != nil {
		c.AddOns = make([]AddOn, len(b.AddOns))
		copy(c.AddOns, b.AddOns)
	}
	if b.CancellationFee != nil {
		fee := *b.CancellationFee
		c.CancellationFee = &fee
	}
	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		c.CancellationReason = &reason
	}
	if b.CancelledAt != nil {
		ts := *b.CancelledAt
		c.CancelledAt = &ts
	}
	if b.CheckedInAt != nil {
		ts := *b.CheckedInAt
		c.CheckedInAt = &ts
	}
	return &c
}
