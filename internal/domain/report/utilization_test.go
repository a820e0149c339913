package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhall/internal/domain/booking"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func interval(start time.Time, hours float64, status booking.Status) booking.Interval {
	return booking.Interval{
		SeatID:    1,
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours * float64(time.Hour))),
		Status:    status,
	}
}

func TestComputeDailyUtilization_CapsAt100(t *testing.T) {
	bookings := []booking.Interval{
		interval(day(3).Add(6*time.Hour), 10, booking.StatusConfirmed),
		interval(day(3).Add(16*time.Hour), 10, booking.StatusConfirmed),
	}

	daily := ComputeDailyUtilization(bookings, 1, day(3), day(3), DefaultOptions())
	assert.Equal(t, map[string]float64{"2025-03-03": 100.0}, daily)
}

func TestComputeDailyUtilization_ZeroSeats(t *testing.T) {
	bookings := []booking.Interval{interval(day(3).Add(9*time.Hour), 4, booking.StatusConfirmed)}

	daily := ComputeDailyUtilization(bookings, 0, day(1), day(5), DefaultOptions())
	require.Len(t, daily, 5)
	for date, pct := range daily {
		assert.Zero(t, pct, date)
	}
	assert.Zero(t, AverageUtilization(daily))
}

func TestComputeDailyUtilization_EveryDateInRange(t *testing.T) {
	// 2 seats * 12h = 24 seat-hours per day
	bookings := []booking.Interval{
		interval(day(2).Add(9*time.Hour), 6, booking.StatusConfirmed),
		interval(day(2).Add(9*time.Hour), 6, booking.StatusCompleted),
		interval(day(4).Add(10*time.Hour), 3, booking.StatusConfirmed),
		interval(day(9).Add(10*time.Hour), 3, booking.StatusConfirmed),
	}

	daily := ComputeDailyUtilization(bookings, 2, day(1), day(4), DefaultOptions())
	assert.Equal(t, map[string]float64{
		"2025-03-01": 0,
		"2025-03-02": 50,
		"2025-03-03": 0,
		"2025-03-04": 12.5,
	}, daily)
	assert.InDelta(t, 15.625, AverageUtilization(daily), 1e-9)
}

func TestComputeDailyUtilization_MidnightBookingStaysOnStartDate(t *testing.T) {
	bookings := []booking.Interval{interval(day(3).Add(22*time.Hour), 4, booking.StatusConfirmed)}

	daily := ComputeDailyUtilization(bookings, 1, day(3), day(4), Options{OperatingHoursPerDay: 8})
	assert.Equal(t, 50.0, daily["2025-03-03"])
	assert.Zero(t, daily["2025-03-04"])
}

func TestComputeDailyUtilization_UsesLocationForDates(t *testing.T) {
	almaty := time.FixedZone("UTC+5", 5*60*60)
	// 21:00 UTC on the 3rd is 02:00 on the 4th in UTC+5
	bookings := []booking.Interval{interval(day(3).Add(21*time.Hour), 6, booking.StatusConfirmed)}

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, almaty)
	end := time.Date(2025, 3, 4, 0, 0, 0, 0, almaty)
	daily := ComputeDailyUtilization(bookings, 1, start, end, Options{OperatingHoursPerDay: 12, Location: almaty})
	assert.Zero(t, daily["2025-03-03"])
	assert.Equal(t, 50.0, daily["2025-03-04"])
}

func TestComputeDailyUtilization_EndBeforeStartIsEmpty(t *testing.T) {
	assert.Empty(t, ComputeDailyUtilization(nil, 3, day(5), day(4), DefaultOptions()))
	assert.Zero(t, AverageUtilization(nil))
}
