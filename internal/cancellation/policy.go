package cancellation

import (
	"time"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// Strategy вычисляет штраф за отмену бронирования.
// Стратегии чистые: не имеют состояния и не требуют синхронизации.
type Strategy interface {
	Fee(booking *domain.Booking, now time.Time) (domain.Money, error)
}

// Граница окна включающая со стороны бесплатной отмены:
// при starts_at - now >= window отмена вне окна и штраф не берется.
// Отмена ровно за window до начала слота бесплатна.
func insideWindow(booking *domain.Booking, now time.Time, window time.Duration) bool {
	return booking.SlotStartsAt.Sub(now) < window
}

// NoFeeBeforeWindow не назначает штрафов вообще: вне окна отмена бесплатна
// по правилу, внутри окна эта стратегия штраф не назначает сама — парная
// PercentageAfterWindow отвечает за сторону наказания. В цепочке Chain
// активной стратегией оказывается первая, давшая ненулевой штраф.
type NoFeeBeforeWindow struct {
	window time.Duration
}

// NewNoFeeBeforeWindow создает стратегию с окном в часах
func NewNoFeeBeforeWindow(hours int) *NoFeeBeforeWindow {
	return &NoFeeBeforeWindow{window: time.Duration(hours) * time.Hour}
}

// Fee всегда возвращает нулевой штраф в валюте цены бронирования
func (s *NoFeeBeforeWindow) Fee(booking *domain.Booking, now time.Time) (domain.Money, error) {
	return booking.Price.Zero(), nil
}

// PercentageAfterWindow назначает штраф percent процентов от цены
// бронирования при отмене внутри окна; вне окна штраф нулевой.
type PercentageAfterWindow struct {
	window  time.Duration
	percent float64
}

// NewPercentageAfterWindow создает стратегию с окном в часах и процентом штрафа
func NewPercentageAfterWindow(hours int, percent float64) *PercentageAfterWindow {
	return &PercentageAfterWindow{
		window:  time.Duration(hours) * time.Hour,
		percent: percent,
	}
}

// Fee возвращает percent процентов от цены внутри окна, иначе ноль
func (s *PercentageAfterWindow) Fee(booking *domain.Booking, now time.Time) (domain.Money, error) {
	if !insideWindow(booking, now, s.window) {
		return booking.Price.Zero(), nil
	}
	return booking.Price.Percent(s.percent), nil
}

// Chain перебирает стратегии по порядку и возвращает первый ненулевой штраф.
// Если все стратегии дали ноль, штрафа нет.
type Chain struct {
	strategies []Strategy
}

// NewChain создает цепочку стратегий
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Fee возвращает первый ненулевой штраф из цепочки
func (c *Chain) Fee(booking *domain.Booking, now time.Time) (domain.Money, error) {
	for _, strategy := range c.strategies {
		fee, err := strategy.Fee(booking, now)
		if err != nil {
			return domain.Money{}, err
		}
		if !fee.IsZero() {
			return fee, nil
		}
	}
	return booking.Price.Zero(), nil
}
