package hall

import "errors"

var (
	ErrHallNotFound = errors.New("hall not found")
	// ErrForbidden means the hall exists but belongs to another owner.
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")
)
