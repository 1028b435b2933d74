package lifecycle

import (
	"time"

	"github.com/m04kA/SMC-BookingCore/internal/domain"
)

// FeeStrategy интерфейс стратегии расчета штрафа за отмену
type FeeStrategy interface {
	Fee(booking *domain.Booking, now time.Time) (domain.Money, error)
}

// Metrics интерфейс для учета переходов
type Metrics interface {
	IncTransition(from, action string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
