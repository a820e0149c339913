package seat

import (
	"errors"
	"fmt"
	"strings"

	"studyhall/internal/domain/hall"
)

var (
	ErrEmptySeatList       = errors.New("seat list is empty")
	ErrDuplicateSeatNumber = errors.New("duplicate seat number")
	ErrInvalidSeatSpec     = errors.New("invalid seat spec")
	ErrInvalidData         = errors.New("invalid data")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrSomeSeatsNotFound   = errors.New("some seats not found")
	ErrForbidden           = hall.ErrForbidden

	ErrInvalidStatus            = errors.New("invalid seat status")
	ErrInvalidMaintenanceReason = errors.New("invalid maintenance reason")
	ErrInvalidMaintenanceWindow = errors.New("maintenance_until must be in the future")
)

// DuplicateSeatError lists every seat number that appears more than once.
type DuplicateSeatError struct {
	Numbers []string
}

func (e *DuplicateSeatError) Error() string {
	return "duplicate seat numbers: " + strings.Join(e.Numbers, ", ")
}

func (e *DuplicateSeatError) Is(target error) bool {
	return target == ErrDuplicateSeatNumber
}

// SeatSpecError points at the first seat spec outside the configured limits.
type SeatSpecError struct {
	Index      int
	SeatNumber string
	Field      string
	Reason     string
}

func (e *SeatSpecError) Error() string {
	return fmt.Sprintf("seat %d (%q): %s %s", e.Index, e.SeatNumber, e.Field, e.Reason)
}

func (e *SeatSpecError) Is(target error) bool {
	return target == ErrInvalidSeatSpec
}
