package availability

import (
	"testing"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestRangesOverlap(t *testing.T) {
	t.Run("DisjointRanges", func(t *testing.T) {
		assert.False(t, RangesOverlap(
			day(2024, 6, 1), day(2024, 6, 3),
			day(2024, 6, 4), day(2024, 6, 6),
		))
	})

	t.Run("SharedBoundaryDay", func(t *testing.T) {
		// Inclusive ranges: touching on the same calendar day is an overlap.
		assert.True(t, RangesOverlap(
			day(2024, 6, 1), day(2024, 6, 3),
			day(2024, 6, 3), day(2024, 6, 6),
		))
	})

	t.Run("ContainedRange", func(t *testing.T) {
		assert.True(t, RangesOverlap(
			day(2024, 6, 1), day(2024, 6, 10),
			day(2024, 6, 4), day(2024, 6, 5),
		))
	})

	t.Run("SingleDayRanges", func(t *testing.T) {
		assert.True(t, RangesOverlap(
			day(2024, 6, 5), day(2024, 6, 5),
			day(2024, 6, 5), day(2024, 6, 5),
		))
		assert.False(t, RangesOverlap(
			day(2024, 6, 5), day(2024, 6, 5),
			day(2024, 6, 6), day(2024, 6, 6),
		))
	})

	t.Run("TimeOfDayComponentsIgnored", func(t *testing.T) {
		// A stored timestamp at 14:30 must not break day-granularity overlap.
		lateStart := time.Date(2024, 6, 3, 14, 30, 0, 0, time.Local)
		earlyEnd := time.Date(2024, 6, 3, 1, 0, 0, 0, time.Local)
		assert.True(t, RangesOverlap(
			day(2024, 6, 1), earlyEnd,
			lateStart, day(2024, 6, 6),
		))
	})
}

func TestIsDateBooked(t *testing.T) {
	bookings := []models.Booking{
		{ID: "1", StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 5)},
	}

	assert.True(t, IsDateBooked(day(2024, 6, 1), bookings))
	assert.True(t, IsDateBooked(day(2024, 6, 4), bookings))
	assert.True(t, IsDateBooked(day(2024, 6, 5), bookings))
	assert.False(t, IsDateBooked(day(2024, 6, 6), bookings))
	assert.False(t, IsDateBooked(day(2024, 5, 31), bookings))
	assert.False(t, IsDateBooked(day(2024, 6, 1), nil))
}

func TestIsRangeBooked(t *testing.T) {
	bookings := []models.Booking{
		{ID: "1", StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 5)},
		{ID: "2", StartDate: day(2024, 7, 1), EndDate: day(2024, 7, 5)},
	}

	t.Run("OverlappingRange", func(t *testing.T) {
		assert.True(t, IsRangeBooked(day(2024, 6, 4), day(2024, 6, 10), bookings, ""))
	})

	t.Run("FreeRange", func(t *testing.T) {
		assert.False(t, IsRangeBooked(day(2024, 6, 10), day(2024, 6, 20), bookings, ""))
	})

	t.Run("ExcludedBookingIgnored", func(t *testing.T) {
		// A booking re-validated against its own dates never conflicts with itself.
		assert.False(t, IsRangeBooked(day(2024, 6, 1), day(2024, 6, 5), bookings, "1"))
		assert.True(t, IsRangeBooked(day(2024, 6, 1), day(2024, 6, 5), bookings, "2"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := IsRangeBooked(day(2024, 7, 3), day(2024, 7, 4), bookings, "")
		second := IsRangeBooked(day(2024, 7, 3), day(2024, 7, 4), bookings, "")
		assert.Equal(t, first, second)
		assert.True(t, first)
	})
}
