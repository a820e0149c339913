package report

import (
	"sort"
	"time"

	"studyhall/internal/domain/booking"
)

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// ComputeBusiestHours counts confirmed bookings starting within the dates
// [start, end] by hour of day, summed over all days. Hours with no bookings
// are absent.
func ComputeBusiestHours(bookings []booking.Interval, start, end time.Time, loc *time.Location) map[int]int {
	opt := Options{Location: loc}
	loc = opt.location()
	from, to := opt.Window(start, end)

	hours := make(map[int]int)
	for _, b := range bookings {
		if !b.Status.Confirmed() {
			continue
		}
		if b.StartTime.Before(from) || !b.StartTime.Before(to) {
			continue
		}
		hours[b.StartTime.In(loc).Hour()]++
	}
	return hours
}

// RankHours orders the histogram by count, highest first; equal counts go
// by earlier hour.
func RankHours(hist map[int]int) []HourCount {
	ranked := make([]HourCount, 0, len(hist))
	for h, n := range hist {
		ranked = append(ranked, HourCount{Hour: h, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hour < ranked[j].Hour
	})
	return ranked
}
