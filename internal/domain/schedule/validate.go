package schedule

import (
	"fmt"
	"sort"
	"strconv"
)

type timedShift struct {
	label      string
	start, end int
}

// Validate checks every configured day, Monday first, and returns the first
// *ValidationError found. The schedule is not modified.
func Validate(w WeekSchedule) error {
	if w.Empty() {
		return &ValidationError{
			Code:    CodeEmptyConfiguration,
			Message: "schedule has no configured days",
		}
	}
	for d := Monday; d <= Sunday; d++ {
		if w[d] == nil {
			continue
		}
		if err := validateDay(d, w[d]); err != nil {
			return err
		}
	}
	return nil
}

func validateDay(d Weekday, h *DayHours) error {
	day := d.String()

	open, err := parseClock(h.Open)
	if err != nil {
		return timeFormatError(day, "", "open", h.Open)
	}
	closeAt, err := parseClock(h.Close)
	if err != nil {
		return timeFormatError(day, "", "close", h.Close)
	}
	if open >= closeAt {
		return &ValidationError{
			Code:    CodeOpenNotBeforeClose,
			Day:     day,
			Message: fmt.Sprintf("%s: open %s must be before close %s", day, h.Open, h.Close),
		}
	}

	shifts := make([]timedShift, 0, len(h.Shifts))
	for i, s := range h.Shifts {
		label := shiftLabel(i, s)
		start, err := parseClock(s.Start)
		if err != nil {
			return timeFormatError(day, label, "start", s.Start)
		}
		end, err := parseClock(s.End)
		if err != nil {
			return timeFormatError(day, label, "end", s.End)
		}
		shifts = append(shifts, timedShift{label: label, start: start, end: end})
	}

	// equal starts keep input order
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].start < shifts[j].start
	})

	for _, s := range shifts {
		if s.start >= s.end {
			return &ValidationError{
				Code:    CodeInvalidShiftRange,
				Day:     day,
				Shift:   s.label,
				Message: fmt.Sprintf("%s: shift %s starts at or after its end", day, s.label),
			}
		}
		if s.start < open || s.end > closeAt {
			return &ValidationError{
				Code:    CodeShiftOutsideOperatingHours,
				Day:     day,
				Shift:   s.label,
				Message: fmt.Sprintf("%s: shift %s is outside %s-%s", day, s.label, h.Open, h.Close),
			}
		}
	}

	for i := 0; i+1 < len(shifts); i++ {
		cur, next := shifts[i], shifts[i+1]
		if cur.end > next.start {
			return &ValidationError{
				Code:    CodeShiftOverlap,
				Day:     day,
				Shift:   next.label,
				Message: fmt.Sprintf("%s: shift %s overlaps shift %s", day, cur.label, next.label),
			}
		}
	}
	return nil
}

func timeFormatError(day, shift, field, value string) *ValidationError {
	where := day + "." + field
	if shift != "" {
		where = day + ": shift " + shift + "." + field
	}
	return &ValidationError{
		Code:    CodeInvalidTimeFormat,
		Day:     day,
		Shift:   shift,
		Field:   field,
		Message: fmt.Sprintf("%s: %q is not a valid HH:mm time", where, value),
	}
}

func shiftLabel(i int, s Shift) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.ID != "":
		return s.ID
	default:
		return "#" + strconv.Itoa(i+1)
	}
}
