package schedule

import "errors"

// Code identifies the rule a schedule broke.
type Code string

const (
	CodeInvalidTimeFormat          Code = "INVALID_TIME_FORMAT"
	CodeOpenNotBeforeClose         Code = "OPEN_NOT_BEFORE_CLOSE"
	CodeInvalidShiftRange          Code = "INVALID_SHIFT_RANGE"
	CodeShiftOutsideOperatingHours Code = "SHIFT_OUTSIDE_OPERATING_HOURS"
	CodeShiftOverlap               Code = "SHIFT_OVERLAP"
	CodeEmptyConfiguration         Code = "EMPTY_CONFIGURATION"
	CodeInvalidDay                 Code = "INVALID_DAY"
)

var (
	ErrInvalidTimeFormat          = errors.New("invalid time format")
	ErrOpenNotBeforeClose         = errors.New("open time must be before close time")
	ErrInvalidShiftRange          = errors.New("shift start must be before end")
	ErrShiftOutsideOperatingHours = errors.New("shift outside operating hours")
	ErrShiftOverlap               = errors.New("shifts overlap")
	ErrEmptyConfiguration         = errors.New("empty schedule")
	ErrInvalidDay                 = errors.New("invalid day")
)

var codeSentinels = map[Code]error{
	CodeInvalidTimeFormat:          ErrInvalidTimeFormat,
	CodeOpenNotBeforeClose:         ErrOpenNotBeforeClose,
	CodeInvalidShiftRange:          ErrInvalidShiftRange,
	CodeShiftOutsideOperatingHours: ErrShiftOutsideOperatingHours,
	CodeShiftOverlap:               ErrShiftOverlap,
	CodeEmptyConfiguration:         ErrEmptyConfiguration,
	CodeInvalidDay:                 ErrInvalidDay,
}

// ValidationError describes the first rule a schedule broke. Day, Shift and
// Field are empty when they do not apply.
type ValidationError struct {
	Code    Code   `json:"code"`
	Day     string `json:"day,omitempty"`
	Shift   string `json:"shift,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is match a ValidationError against its code's sentinel.
func (e *ValidationError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}
