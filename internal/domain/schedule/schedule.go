package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shift is a named sub-interval of a day's operating hours.
type Shift struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayHours holds the open/close envelope of one weekday and its shifts.
// Times are kept exactly as supplied.
type DayHours struct {
	Open   string  `json:"open"`
	Close  string  `json:"close"`
	Shifts []Shift `json:"shifts"`
}

// WeekSchedule is indexed by Weekday. A nil slot is a day with no
// configuration.
type WeekSchedule [daysInWeek]*DayHours

func (w WeekSchedule) Day(d Weekday) *DayHours {
	if !d.Valid() {
		return nil
	}
	return w[d]
}

func (w WeekSchedule) Empty() bool {
	for _, d := range w {
		if d != nil {
			return false
		}
	}
	return true
}

// MarshalJSON writes an object keyed by lower-case weekday name. Unset days
// are omitted.
func (w WeekSchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]*DayHours, daysInWeek)
	for i, d := range w {
		if d != nil {
			out[weekdayNames[i]] = d
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads an object keyed by day name. Keys are matched
// case-insensitively and each day may appear once.
func (w *WeekSchedule) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("schedule days must be an object")
	}

	var parsed WeekSchedule
	var seen [daysInWeek]bool
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		d, ok := ParseWeekday(key)
		if !ok {
			return &ValidationError{
				Code:    CodeInvalidDay,
				Day:     key,
				Message: fmt.Sprintf("unknown day %q", key),
			}
		}
		if seen[d] {
			return &ValidationError{
				Code:    CodeInvalidDay,
				Day:     key,
				Message: fmt.Sprintf("day %q given more than once", d.String()),
			}
		}
		seen[d] = true

		var hours *DayHours
		if err := dec.Decode(&hours); err != nil {
			return err
		}
		parsed[d] = hours
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*w = parsed
	return nil
}

// DefaultSchedule is returned for halls that never saved a schedule:
// every day 06:00-22:00 split into Morning, Afternoon and Evening.
func DefaultSchedule() WeekSchedule {
	var w WeekSchedule
	for d := Monday; d <= Sunday; d++ {
		w[d] = &DayHours{
			Open:  "06:00",
			Close: "22:00",
			Shifts: []Shift{
				{ID: "morning", Name: "Morning", Start: "06:00", End: "12:00"},
				{ID: "afternoon", Name: "Afternoon", Start: "12:00", End: "17:00"},
				{ID: "evening", Name: "Evening", Start: "17:00", End: "22:00"},
			},
		}
	}
	return w
}
