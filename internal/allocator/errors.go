package allocator

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не зарегистрирован в аллокаторе
	ErrSlotNotFound = errors.New("allocator: slot not found")

	// ErrSlotAlreadyRegistered возвращается при повторной регистрации слота
	ErrSlotAlreadyRegistered = errors.New("allocator: slot already registered")

	// ErrInvalidCapacity возвращается, когда вместимость слота некорректна
	ErrInvalidCapacity = errors.New("allocator: slot capacity must be positive")

	// ErrInvalidCount возвращается, когда запрошено неположительное число мест
	ErrInvalidCount = errors.New("allocator: reservation count must be positive")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает свободных мест
	ErrCapacityExceeded = errors.New("allocator: capacity exceeded")

	// ErrTokenNotFound возвращается, когда токен резервирования неизвестен
	ErrTokenNotFound = errors.New("allocator: reservation token not found")

	// ErrAlreadyReleased возвращается при повторном освобождении токена
	ErrAlreadyReleased = errors.New("allocator: reservation already released")
)
