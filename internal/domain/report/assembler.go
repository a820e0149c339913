package report

import (
	"time"

	"studyhall/internal/domain/booking"
	"studyhall/internal/domain/hall"
)

// UtilizationReport is derived on every request and never stored.
type UtilizationReport struct {
	HallID             int64              `json:"hall_id"`
	HallName           string             `json:"hall_name"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	TotalRevenue       float64            `json:"total_revenue"`
	DailyUtilization   map[string]float64 `json:"daily_utilization"`
	AverageUtilization float64            `json:"average_utilization"`
	BusiestHours       map[int]int        `json:"busiest_hours"`
	BusiestHoursRanked []HourCount        `json:"busiest_hours_ranked"`
	TotalBookings      int                `json:"total_bookings"`
	TotalSeats         int                `json:"total_seats"`
}

// Assemble builds a report from already loaded data. bookings and revenue
// must be limited to confirmed bookings by the caller.
func Assemble(h *hall.Hall, start, end time.Time, totalSeats int, bookings []booking.Interval, revenue float64, opt Options) *UtilizationReport {
	loc := opt.location()
	daily := ComputeDailyUtilization(bookings, totalSeats, start, end, opt)
	hist := ComputeBusiestHours(bookings, start, end, loc)

	return &UtilizationReport{
		HallID:             h.ID,
		HallName:           h.Name,
		StartDate:          startOfDay(start, loc).Format(DateLayout),
		EndDate:            startOfDay(end, loc).Format(DateLayout),
		TotalRevenue:       revenue,
		DailyUtilization:   daily,
		AverageUtilization: AverageUtilization(daily),
		BusiestHours:       hist,
		BusiestHoursRanked: RankHours(hist),
		TotalBookings:      len(bookings),
		TotalSeats:         totalSeats,
	}
}
