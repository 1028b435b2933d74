package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("service: booking not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("service: slot not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
