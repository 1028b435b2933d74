package domain

import "github.com/google/uuid"

// ScheduleSlot represents a bookable time window with finite capacity.
// Reserved is mutated only by the slot allocator; it never exceeds Capacity.
type ScheduleSlot struct {
	ID       uuid.UUID
	Capacity int
	Reserved int
	Time     TimeRange
}

// AvailableSpots returns the number of spots still free in the slot.
func (s *ScheduleSlot) AvailableSpots() int {
	return s.Capacity - s.Reserved
}

// IsFull returns true if the slot has no available spots.
func (s *ScheduleSlot) IsFull() bool {
	return s.AvailableSpots() <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all spots available.
func (s *ScheduleSlot) IsPartiallyAvailable() bool {
	return s.Reserved > 0 && !s.IsFull()
}

// OccupancyRate returns the occupancy rate as a percentage (0-100).
func (s *ScheduleSlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Reserved) / float64(s.Capacity) * 100
}

// Clone returns an independent copy of the slot.
func (s *ScheduleSlot) Clone() *ScheduleSlot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
