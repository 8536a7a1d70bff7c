package service

import (
	"errors"

	"github.com/Git-LeAmaral/reserva-praia/internal/selection"
)

// User-recoverable rejection conditions. Each one is surfaced to the
// presentation layer as its own condition; they are never collapsed into
// a generic failure and none of them is fatal to the process.
var (
	// ErrDateUnavailable: a single clicked day is already booked.
	ErrDateUnavailable = errors.New("date unavailable: day is already booked")

	// ErrRangeConflict: the requested period overlaps an existing booking.
	ErrRangeConflict = errors.New("period unavailable: range overlaps an existing booking")

	// ErrMissingDates: an edit arrived without parseable start/end dates.
	ErrMissingDates = errors.New("invalid dates: start and end are required")

	// ErrInvertedRange: on edit the end date must be strictly after the
	// start date (creation clamps instead, edits do not).
	ErrInvertedRange = errors.New("invalid dates: end date must be after start date")

	// ErrMissingTitular: a booking needs the full titular details.
	ErrMissingTitular = errors.New("titular name, document, age, phone and email are required")

	// ErrTooManyGuests: 1 titular plus at most 5 companions.
	ErrTooManyGuests = errors.New("too many guests: a booking holds at most 6 people")
)

// RejectionError maps a selection outcome kind to its sentinel error so
// the presentation layer can render rejections uniformly with the edit
// flow's validation failures.
func RejectionError(kind string) error {
	switch kind {
	case selection.OutcomeDateUnavailable:
		return ErrDateUnavailable
	case selection.OutcomeRangeConflict:
		return ErrRangeConflict
	default:
		return nil
	}
}
