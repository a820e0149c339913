package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneDay(d Weekday, open, close string, shifts ...Shift) WeekSchedule {
	var w WeekSchedule
	w[d] = &DayHours{Open: open, Close: close, Shifts: shifts}
	return w
}

func shift(name, start, end string) Shift {
	return Shift{ID: name, Name: name, Start: start, End: end}
}

func requireCode(t *testing.T, err error, code Code) *ValidationError {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	assert.Equal(t, code, ve.Code)
	return ve
}

func TestValidate_DefaultScheduleIsValid(t *testing.T) {
	assert.NoError(t, Validate(DefaultSchedule()))
}

func TestValidate_Overlap(t *testing.T) {
	w := oneDay(Monday, "08:00", "20:00",
		shift("A", "09:00", "14:00"),
		shift("B", "13:00", "18:00"),
	)
	err := Validate(w)
	ve := requireCode(t, err, CodeShiftOverlap)
	assert.Equal(t, "monday", ve.Day)
	assert.Equal(t, "B", ve.Shift)
	assert.ErrorIs(t, err, ErrShiftOverlap)
}

func TestValidate_TouchingShiftsAllowed(t *testing.T) {
	w := oneDay(Monday, "08:00", "20:00",
		shift("A", "09:00", "14:00"),
		shift("B", "14:00", "18:00"),
	)
	assert.NoError(t, Validate(w))
}

func TestValidate_UnsortedInputIsSortedBeforeOverlapCheck(t *testing.T) {
	w := oneDay(Friday, "06:00", "22:00",
		shift("Evening", "17:00", "22:00"),
		shift("Morning", "06:00", "12:00"),
		shift("Afternoon", "12:00", "17:00"),
	)
	require.NoError(t, Validate(w))

	// input order untouched
	assert.Equal(t, "Evening", w[Friday].Shifts[0].Name)
	assert.Equal(t, "Morning", w[Friday].Shifts[1].Name)
}

func TestValidate_EqualStartsOverlap(t *testing.T) {
	w := oneDay(Tuesday, "08:00", "20:00",
		shift("First", "09:00", "10:00"),
		shift("Second", "09:00", "11:00"),
	)
	ve := requireCode(t, Validate(w), CodeShiftOverlap)
	assert.Equal(t, "Second", ve.Shift)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name     string
		schedule WeekSchedule
		code     Code
		sentinel error
		field    string
	}{
		{
			name:     "empty",
			schedule: WeekSchedule{},
			code:     CodeEmptyConfiguration,
			sentinel: ErrEmptyConfiguration,
		},
		{
			name:     "bad open",
			schedule: oneDay(Monday, "9:00", "18:00"),
			code:     CodeInvalidTimeFormat,
			sentinel: ErrInvalidTimeFormat,
			field:    "open",
		},
		{
			name:     "hour out of range",
			schedule: oneDay(Monday, "08:00", "24:00"),
			code:     CodeInvalidTimeFormat,
			sentinel: ErrInvalidTimeFormat,
			field:    "close",
		},
		{
			name:     "seconds not accepted",
			schedule: oneDay(Monday, "08:00", "18:00", shift("A", "09:00:00", "10:00")),
			code:     CodeInvalidTimeFormat,
			sentinel: ErrInvalidTimeFormat,
			field:    "start",
		},
		{
			name:     "bad minutes",
			schedule: oneDay(Monday, "08:00", "18:00", shift("A", "09:00", "10:60")),
			code:     CodeInvalidTimeFormat,
			sentinel: ErrInvalidTimeFormat,
			field:    "end",
		},
		{
			name:     "open equals close",
			schedule: oneDay(Monday, "10:00", "10:00"),
			code:     CodeOpenNotBeforeClose,
			sentinel: ErrOpenNotBeforeClose,
		},
		{
			name:     "open after close",
			schedule: oneDay(Monday, "20:00", "08:00"),
			code:     CodeOpenNotBeforeClose,
			sentinel: ErrOpenNotBeforeClose,
		},
		{
			name:     "empty shift",
			schedule: oneDay(Monday, "08:00", "18:00", shift("A", "10:00", "10:00")),
			code:     CodeInvalidShiftRange,
			sentinel: ErrInvalidShiftRange,
		},
		{
			name:     "reversed shift",
			schedule: oneDay(Monday, "08:00", "18:00", shift("A", "12:00", "10:00")),
			code:     CodeInvalidShiftRange,
			sentinel: ErrInvalidShiftRange,
		},
		{
			name:     "starts before open",
			schedule: oneDay(Monday, "08:00", "18:00", shift("A", "07:30", "10:00")),
			code:     CodeShiftOutsideOperatingHours,
			sentinel: ErrShiftOutsideOperatingHours,
		},
		{
			name:     "ends after close",
			schedule: oneDay(Monday, "08:00", "18:00", shift("A", "16:00", "18:01")),
			code:     CodeShiftOutsideOperatingHours,
			sentinel: ErrShiftOutsideOperatingHours,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.schedule)
			ve := requireCode(t, err, tc.code)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.Equal(t, tc.field, ve.Field)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

func TestValidate_ShiftsMatchingEnvelopeAreInside(t *testing.T) {
	w := oneDay(Sunday, "08:00", "18:00", shift("All day", "08:00", "18:00"))
	assert.NoError(t, Validate(w))
}

func TestValidate_FirstFailingDayIsReported(t *testing.T) {
	var w WeekSchedule
	w[Sunday] = &DayHours{Open: "bad", Close: "18:00"}
	w[Wednesday] = &DayHours{Open: "18:00", Close: "08:00"}

	ve := requireCode(t, Validate(w), CodeOpenNotBeforeClose)
	assert.Equal(t, "wednesday", ve.Day)
}

func TestValidate_UnnamedShiftLabelledByPosition(t *testing.T) {
	w := oneDay(Monday, "08:00", "18:00", Shift{Start: "09:00", End: "10:00"}, Shift{Start: "xx", End: "11:00"})
	ve := requireCode(t, Validate(w), CodeInvalidTimeFormat)
	assert.Equal(t, "#2", ve.Shift)
}

func TestParseClock(t *testing.T) {
	ok := map[string]int{"00:00": 0, "09:30": 570, "23:59": 1439}
	for in, want := range ok {
		got, err := parseClock(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "9:30", "09:3", "0930", "09-30", "-1:00", "ab:cd", "24:00", "12:60", " 09:30"} {
		_, err := parseClock(in)
		assert.Error(t, err, in)
	}
}
