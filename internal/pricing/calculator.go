package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// Strategy чистая функция одного шага ценообразования.
// Получает промежуточный итог предыдущего шага и контекст решения,
// возвращает новый итог, округленный до минорной единицы.
type Strategy func(total domain.Money, ctx *domain.PricingContext) (domain.Money, error)

// Calculator сворачивает упорядоченный список стратегий над базовой ценой.
// Порядок задает вызывающая сторона; калькулятор его никогда не меняет.
type Calculator struct{}

// NewCalculator создает калькулятор цены
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Total применяет стратегии по порядку, каждая получает итог предыдущей.
func (c *Calculator) Total(base domain.Money, ctx *domain.PricingContext, strategies []Strategy) (domain.Money, error) {
	total := base
	for i, strategy := range strategies {
		next, err := strategy(total, ctx)
		if err != nil {
			return domain.Money{}, fmt.Errorf("%w: step %d: %v", ErrStrategyFailed, i, err)
		}
		if next.Currency != total.Currency {
			return domain.Money{}, fmt.Errorf("%w: step %d returned %s, want %s",
				ErrCurrencyChanged, i, next.Currency, total.Currency)
		}
		total = next
	}
	return total, nil
}
