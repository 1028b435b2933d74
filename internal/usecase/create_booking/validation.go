package create_booking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validateRequest валидирует входные данные запроса
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidInput)
	}

	if err := uc.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("%w: field %s failed on %q", ErrInvalidInput, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
