// Package availability answers whether calendar days and date ranges are
// already taken by existing bookings. All functions are pure: they operate
// on the booking set they are given and hold no state of their own.
package availability

import (
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"
)

// StartOfDay normalizes t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay normalizes t to the last second of its calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// RangesOverlap reports whether the inclusive date ranges [aStart, aEnd]
// and [bStart, bEnd] share at least one calendar day. Each side is
// normalized independently (start floored to midnight, end ceiled to the
// end of its day) so stored timestamps with stray time-of-day components
// cannot skew the comparison. The predicate itself is
// max(starts) <= min(ends).
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	as, ae := StartOfDay(aStart), EndOfDay(aEnd)
	bs, be := StartOfDay(bStart), EndOfDay(bEnd)

	latestStart := as
	if bs.After(as) {
		latestStart = bs
	}
	earliestEnd := ae
	if be.Before(ae) {
		earliestEnd = be
	}
	return !latestStart.After(earliestEnd)
}

// IsDateBooked reports whether date falls inside any booking's inclusive
// [StartDate, EndDate] range.
func IsDateBooked(date time.Time, bookings []models.Booking) bool {
	return IsRangeBooked(date, date, bookings, "")
}

// IsRangeBooked reports whether [start, end] overlaps any booking whose
// ID differs from excludeID. Pass an empty excludeID to check against the
// whole set; the edit flow passes the booking under edit so it never
// conflicts with itself.
func IsRangeBooked(start, end time.Time, bookings []models.Booking, excludeID string) bool {
	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if RangesOverlap(start, end, b.StartDate, b.EndDate) {
			return true
		}
	}
	return false
}
