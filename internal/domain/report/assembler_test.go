package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhall/internal/domain/booking"
	"studyhall/internal/domain/hall"
)

func TestAssemble(t *testing.T) {
	h := &hall.Hall{ID: 5, Name: "North Wing"}
	bookings := []booking.Interval{
		interval(day(3).Add(9*time.Hour), 12, booking.StatusConfirmed),
		interval(day(4).Add(9*time.Hour), 6, booking.StatusCompleted),
	}

	r := Assemble(h, day(3), day(4), 1, bookings, 240.5, DefaultOptions())
	assert.Equal(t, int64(5), r.HallID)
	assert.Equal(t, "North Wing", r.HallName)
	assert.Equal(t, "2025-03-03", r.StartDate)
	assert.Equal(t, "2025-03-04", r.EndDate)
	assert.Equal(t, 240.5, r.TotalRevenue)
	assert.Equal(t, map[string]float64{"2025-03-03": 100, "2025-03-04": 50}, r.DailyUtilization)
	assert.Equal(t, 75.0, r.AverageUtilization)
	assert.Equal(t, map[int]int{9: 2}, r.BusiestHours)
	assert.Equal(t, []HourCount{{Hour: 9, Count: 2}}, r.BusiestHoursRanked)
	assert.Equal(t, 2, r.TotalBookings)
	assert.Equal(t, 1, r.TotalSeats)
}

func TestJSONRendererOutputDecodesToReport(t *testing.T) {
	h := &hall.Hall{ID: 1, Name: "Main"}
	r := Assemble(h, day(3), day(3), 2, []booking.Interval{interval(day(3).Add(8*time.Hour), 3, booking.StatusConfirmed)}, 90, DefaultOptions())

	renderer, err := DefaultRegistry().Get("JSON")
	require.NoError(t, err)
	assert.Equal(t, "application/json", renderer.ContentType())

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, r))

	var back UtilizationReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *r, back)
}

func TestRegistryUnknownFormat(t *testing.T) {
	reg := DefaultRegistry()
	_, err := reg.Get("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"json"}, reg.Formats())
}
