package pricing

import "errors"

var (
	// ErrStrategyFailed возвращается, когда стратегия вернула ошибку
	ErrStrategyFailed = errors.New("pricing: strategy failed")

	// ErrCurrencyChanged возвращается, когда стратегия сменила валюту итога
	ErrCurrencyChanged = errors.New("pricing: strategy changed currency")
)
