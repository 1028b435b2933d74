package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	allocatorPkg "github.com/m04kA/SMC-BookingCore/internal/allocator"
	"github.com/m04kA/SMC-BookingCore/internal/domain"
	"github.com/m04kA/SMC-BookingCore/internal/pricing"
)

// SlotAllocator интерфейс аллокатора мест в слотах
type SlotAllocator interface {
	Slot(id uuid.UUID) (*domain.ScheduleSlot, error)
	Reserve(slotID uuid.UUID, count int) (allocatorPkg.ReservationToken, error)
	Release(tokenID uuid.UUID) error
}

// PriceCalculator интерфейс калькулятора цены
type PriceCalculator interface {
	Total(base domain.Money, ctx *domain.PricingContext, strategies []pricing.Strategy) (domain.Money, error)
}

// StateMachine интерфейс конечного автомата жизненного цикла
type StateMachine interface {
	Confirm(booking *domain.Booking, paymentAuthorized bool, now time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Metrics интерфейс для учета бизнес-метрик
type Metrics interface {
	IncReservation(result string)
	IncBookingCreated()
	ObserveBookingPrice(minorUnits int64)
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
