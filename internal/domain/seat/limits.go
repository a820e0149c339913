package seat

import (
	"fmt"
	"sort"
	"strings"
)

// Limits bounds seat coordinates and custom prices.
type Limits struct {
	MaxX     int
	MaxY     int
	MinPrice float64
	MaxPrice float64
}

func DefaultLimits() Limits {
	return Limits{MaxX: 800, MaxY: 600, MinPrice: 50, MaxPrice: 1000}
}

// Check validates one spec. index is its position in the submitted list.
func (l Limits) Check(index int, s SeatSpec) error {
	fail := func(field, reason string) error {
		return &SeatSpecError{Index: index, SeatNumber: s.SeatNumber, Field: field, Reason: reason}
	}

	if strings.TrimSpace(s.SeatNumber) == "" {
		return fail("seat_number", "is required")
	}
	if s.X < 0 || s.X > l.MaxX {
		return fail("x", fmt.Sprintf("must be within [0, %d]", l.MaxX))
	}
	if s.Y < 0 || s.Y > l.MaxY {
		return fail("y", fmt.Sprintf("must be within [0, %d]", l.MaxY))
	}
	if s.CustomPrice != nil && (*s.CustomPrice < l.MinPrice || *s.CustomPrice > l.MaxPrice) {
		return fail("custom_price", fmt.Sprintf("must be within [%.2f, %.2f]", l.MinPrice, l.MaxPrice))
	}
	if s.Status != "" && !s.Status.Valid() {
		return fail("status", "is not a known status")
	}
	if s.Status == StatusMaintenance && !s.MaintenanceReason.Valid() {
		return fail("maintenance_reason", "is required for MAINTENANCE")
	}
	return nil
}

// findDuplicates returns the seat numbers occurring more than once, sorted.
// Numbers are compared exactly.
func findDuplicates(specs []SeatSpec) []string {
	seen := make(map[string]int, len(specs))
	for _, s := range specs {
		seen[s.SeatNumber]++
	}
	var dups []string
	for n, c := range seen {
		if c > 1 {
			dups = append(dups, n)
		}
	}
	sort.Strings(dups)
	return dups
}
