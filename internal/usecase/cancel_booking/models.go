package cancel_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID  uuid.UUID `validate:"required"`      // ID бронирования
	CustomerID int64     `validate:"required,gt=0"` // ID пользователя-владельца
	Reason     string    `validate:"max=500"`       // Причина отмены (опционально)

	// Now момент отмены по часам вызывающей стороны; от него считается
	// попадание в окно штрафа. Нулевое значение — системные часы.
	Now time.Time
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID         uuid.UUID // ID бронирования
	CustomerID int64     // ID пользователя
	SlotID     uuid.UUID // ID слота
	State      string    // Состояние после отмены

	FeeMinorUnits int64  // Штраф за отмену в минорных единицах
	Currency      string // Валюта штрафа

	CancelledAt time.Time // Время отмены
}
