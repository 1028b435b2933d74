package domain

// Business validation constants
const (
	MinSlotCapacity             = 1
	MaxSlotCapacity             = 1000
	MaxCancellationReasonLength = 500
	CurrencyCodeLength          = 3
)

// TerminalStates список терминальных состояний бронирования
// Используется для фильтрации при выборке активных бронирований
var TerminalStates = []BookingState{
	StateCanceled,
	StateCompleted,
	StateNoShow,
}

// ActiveStates список активных состояний бронирования
var ActiveStates = []BookingState{
	StateDraft,
	StateConfirmed,
}
