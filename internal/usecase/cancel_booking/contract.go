package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateIfState(ctx context.Context, booking *domain.Booking, expected domain.BookingState) (*domain.Booking, error)
}

// SlotAllocator интерфейс аллокатора мест в слотах
type SlotAllocator interface {
	Release(tokenID uuid.UUID) error
}

// StateMachine интерфейс конечного автомата жизненного цикла
type StateMachine interface {
	Cancel(booking *domain.Booking, reason string, now time.Time) error
}

// Metrics интерфейс для учета бизнес-метрик
type Metrics interface {
	IncBookingCancelled()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
