package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBookingExists возвращается при повторном создании бронирования с тем же ID
	ErrBookingExists = errors.New("booking.repository: booking already exists")

	// ErrInvalidBooking возвращается при попытке сохранить некорректное бронирование
	ErrInvalidBooking = errors.New("booking.repository: invalid booking")

	// ErrStateConflict возвращается, когда сохраненное состояние бронирования
	// уже не совпадает с ожидаемым
	ErrStateConflict = errors.New("booking.repository: state conflict")
)
