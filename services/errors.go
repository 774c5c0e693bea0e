package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Controllers translate these to HTTP
// statuses; anything else is a persistence failure and surfaces as 500 after
// the transaction rolled back.
var (
	ErrNotFound    = errors.New("not_found")
	ErrValidation  = errors.New("validation")
	ErrNotEditable = errors.New("operation_not_editable")
)

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
