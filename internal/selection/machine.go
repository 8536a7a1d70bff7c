// Package selection implements the two-click date-range picker as a pure
// reducer. The calendar UI feeds every day click through Click and renders
// the tagged outcome; the machine itself never touches storage or screens,
// which keeps it testable without any rendering harness.
package selection

import (
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/availability"
	"github.com/Git-LeAmaral/reserva-praia/internal/models"
)

// Outcome kinds emitted by Click. Rejections are values, not errors:
// every one of them is a normal, user-recoverable condition.
const (
	OutcomeIgnored         = "ignored"
	OutcomeStarted         = "started"
	OutcomeRestarted       = "restarted"
	OutcomeDateUnavailable = "date_unavailable"
	OutcomeRangeConflict   = "range_conflict"
	OutcomeCompleted       = "completed"
)

// Outcome is the tagged result of a single calendar click. Start and End
// are populated only for OutcomeCompleted: that is the confirmed range
// the consumer hands to the booking form.
type Outcome struct {
	Kind  string
	Start time.Time
	End   time.Time
}

// Click advances the selection state for a click on the given calendar
// day. The state is either Empty (no start picked) or Pending (start
// picked, end open); a completed pick is emitted through the outcome and
// the machine resets to Empty rather than holding a "both" state.
//
// Clicking a day before today is a no-op regardless of state and never
// reaches the availability checks.
func Click(state models.SelectionRange, day, today time.Time, bookings []models.Booking) (models.SelectionRange, Outcome) {
	d := availability.StartOfDay(day)
	if d.Before(availability.StartOfDay(today)) {
		return state, Outcome{Kind: OutcomeIgnored}
	}

	if availability.IsDateBooked(d, bookings) {
		// Mid-selection this keeps the pending start: clicking a booked
		// day while picking an end date does not throw the start away.
		return state, Outcome{Kind: OutcomeDateUnavailable}
	}

	if state.IsPending() {
		start := availability.StartOfDay(*state.Start)
		if d.Before(start) {
			// Earlier than the pending start: restart from the clicked day.
			return pending(d), Outcome{Kind: OutcomeRestarted, Start: d}
		}
		if availability.IsRangeBooked(start, d, bookings, "") {
			return models.SelectionRange{}, Outcome{Kind: OutcomeRangeConflict}
		}
		// d == start is a valid single-day selection.
		return models.SelectionRange{}, Outcome{Kind: OutcomeCompleted, Start: start, End: d}
	}

	return pending(d), Outcome{Kind: OutcomeStarted, Start: d}
}

func pending(start time.Time) models.SelectionRange {
	return models.SelectionRange{Start: &start}
}
