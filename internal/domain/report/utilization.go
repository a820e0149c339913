package report

import (
	"math"
	"sort"
	"time"

	"studyhall/internal/domain/booking"
)

// ComputeDailyUtilization returns, for every date in [start, end], the share
// of available seat-hours taken by bookings, in percent and capped at 100.
// A booking counts wholly on the date it starts, including when it runs past
// midnight. With no seats every date is 0.
func ComputeDailyUtilization(bookings []booking.Interval, totalSeats int, start, end time.Time, opt Options) map[string]float64 {
	loc := opt.location()
	days := dateRange(start, end, loc)

	booked := make(map[string]float64, len(days))
	for _, d := range days {
		booked[d.Format(DateLayout)] = 0
	}
	for _, b := range bookings {
		key := b.StartTime.In(loc).Format(DateLayout)
		if _, ok := booked[key]; ok {
			booked[key] += b.Hours()
		}
	}

	capacity := float64(totalSeats) * opt.OperatingHoursPerDay
	out := make(map[string]float64, len(booked))
	for key, hours := range booked {
		if totalSeats <= 0 || capacity <= 0 {
			out[key] = 0
			continue
		}
		out[key] = math.Max(0, math.Min(100, hours/capacity*100))
	}
	return out
}

// AverageUtilization is the mean over all dates, zero days included.
func AverageUtilization(daily map[string]float64) float64 {
	if len(daily) == 0 {
		return 0
	}
	keys := make([]string, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum float64
	for _, k := range keys {
		sum += daily[k]
	}
	return sum / float64(len(daily))
}
