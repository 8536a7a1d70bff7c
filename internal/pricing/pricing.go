// Package pricing derives day counts and totals for a stay. Both the
// creation and edit flows compute through these functions so the price
// formula lives in exactly one place.
package pricing

import (
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/availability"
)

// StayDays returns the inclusive calendar-day count of [start, end]:
// a same-day stay counts as 1 day, 2024-06-01 through 2024-06-03 as 3.
// Inverted or zero ranges floor at 1. Both ends are normalized to
// midnight and the delta rounded to whole days, so attached time-of-day
// components and 23/25-hour DST days cannot shift the count.
func StayDays(start, end time.Time) int {
	s := availability.StartOfDay(start)
	e := availability.StartOfDay(end)

	delta := e.Sub(s).Round(24 * time.Hour)
	days := int(delta/(24*time.Hour)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// TotalPrice is days * rate.
func TotalPrice(days int, rate float64) float64 {
	return float64(days) * rate
}
