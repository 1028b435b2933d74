package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID        int64     `validate:"required,gt=0"` // ID пользователя
	SlotID            uuid.UUID `validate:"required"`      // ID слота расписания
	AddOnIDs          []string  `validate:"dive,required"` // Идентификаторы допуслуг (опционально)
	Member            bool      // Участник программы лояльности
	PaymentAuthorized bool      // Платеж авторизован вызывающей стороной
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID // ID созданного бронирования
	CustomerID int64     // ID пользователя
	SlotID     uuid.UUID // ID слота
	State      string    // Состояние бронирования

	SlotStartsAt time.Time // Начало слота
	SlotEndsAt   time.Time // Конец слота

	PriceMinorUnits int64    // Итоговая цена в минорных единицах
	Currency        string   // Валюта цены
	AddOnIDs        []string // Допуслуги, вошедшие в цену

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
