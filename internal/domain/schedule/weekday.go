package schedule

import "strings"

// Weekday indexes a WeekSchedule. Monday is 0.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysInWeek = 7

var weekdayNames = [daysInWeek]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return weekdayNames[d]
}

// ParseWeekday accepts a weekday name in any letter case.
func ParseWeekday(name string) (Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), true
		}
	}
	return 0, false
}
