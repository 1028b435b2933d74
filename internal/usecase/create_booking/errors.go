package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не зарегистрирован
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotAlreadyStarted возвращается при попытке забронировать начавшийся слот
	ErrSlotAlreadyStarted = errors.New("create_booking: slot has already started")

	// ErrSlotNotAvailable возвращается, когда все места в слоте заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrAddOnNotFound возвращается, когда допуслуга отсутствует в каталоге
	ErrAddOnNotFound = errors.New("create_booking: add-on not found")

	// ErrPaymentRequired возвращается, когда политика оплаты требует авторизации платежа
	ErrPaymentRequired = errors.New("create_booking: payment authorization required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
