package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, state *domain.BookingState) ([]*domain.Booking, error)
	GetBySlotID(ctx context.Context, slotID uuid.UUID) ([]*domain.Booking, error)
}

// SlotProvider интерфейс доступа к зарегистрированным слотам
type SlotProvider interface {
	Slot(id uuid.UUID) (*domain.ScheduleSlot, error)
	Snapshot() []*domain.ScheduleSlot
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
