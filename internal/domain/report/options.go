package report

import "time"

const DateLayout = "2006-01-02"

// Options configure the utilization math.
type Options struct {
	// OperatingHoursPerDay is the seat-hours one seat offers per day.
	OperatingHoursPerDay float64
	// Location decides which calendar date and hour a booking falls on.
	Location *time.Location
}

func DefaultOptions() Options {
	return Options{OperatingHoursPerDay: 12, Location: time.UTC}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dateRange lists every calendar date in [start, end], both inclusive.
func dateRange(start, end time.Time, loc *time.Location) []time.Time {
	first := startOfDay(start, loc)
	last := startOfDay(end, loc)
	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Window converts the inclusive date range into the half-open instant range
// [from, to) that bookings are loaded for.
func (o Options) Window(start, end time.Time) (from, to time.Time) {
	loc := o.location()
	return startOfDay(start, loc), startOfDay(end, loc).AddDate(0, 0, 1)
}
