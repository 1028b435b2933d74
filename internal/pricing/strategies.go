package pricing

import "github.com/m04kA/SMC-BookingCore/internal/domain"

// Surge умножает итог на multiplier в пиковые часы.
// Вне пиковых часов итог не меняется.
func Surge(multiplier float64) Strategy {
	return func(total domain.Money, ctx *domain.PricingContext) (domain.Money, error) {
		if ctx == nil || !ctx.PeakHour {
			return total, nil
		}
		return total.MulRatio(multiplier), nil
	}
}

// PercentDiscount уменьшает итог на percent процентов
func PercentDiscount(percent float64) Strategy {
	return func(total domain.Money, ctx *domain.PricingContext) (domain.Money, error) {
		return total.MulRatio(1 - percent/100), nil
	}
}

// MemberDiscount уменьшает итог на percent процентов для участников программы
func MemberDiscount(percent float64) Strategy {
	return func(total domain.Money, ctx *domain.PricingContext) (domain.Money, error) {
		if ctx == nil || !ctx.Member {
			return total, nil
		}
		return total.MulRatio(1 - percent/100), nil
	}
}

// Tax добавляет налог percent процентов к итогу
func Tax(percent float64) Strategy {
	return func(total domain.Money, ctx *domain.PricingContext) (domain.Money, error) {
		return total.MulRatio(1 + percent/100), nil
	}
}

// AddOns прибавляет суммарную стоимость допуслуг фиксированной суммой.
// Ставится последним шагом цепочки: процентные стратегии выше по цепочке
// не должны затрагивать допуслуги.
func AddOns() Strategy {
	return func(total domain.Money, ctx *domain.PricingContext) (domain.Money, error) {
		if ctx == nil || len(ctx.AddOns) == 0 {
			return total, nil
		}
		sum, err := ctx.AddOnTotal(total.Currency)
		if err != nil {
			return domain.Money{}, err
		}
		return total.Add(sum)
	}
}
