package lifecycle

import "errors"

var (
	// ErrInvalidTransition возвращается при переходе, которого нет в таблице
	ErrInvalidTransition = errors.New("lifecycle: invalid transition")

	// ErrPreconditionFailed возвращается, когда предусловие перехода нарушено.
	// Обертка называет нарушенное предусловие.
	ErrPreconditionFailed = errors.New("lifecycle: precondition failed")

	// ErrFeeComputation возвращается при ошибке расчета штрафа за отмену
	ErrFeeComputation = errors.New("lifecycle: failed to compute cancellation fee")
)
