package models

const (
	// DefaultDailyRate is charged per booked calendar day when a booking
	// has no explicit rate.
	DefaultDailyRate = 300.0

	// MaxCompanions caps secondary guests per booking.
	MaxCompanions = 5

	// MaxGuests is the total person cap: 1 titular + MaxCompanions.
	MaxGuests = 1 + MaxCompanions
)

const (
	// DefaultSelectionTTL is how long an unfinished date selection lives
	// in Redis before it counts as abandoned.
	DefaultSelectionTTL = 24 * 60 * 60 // 24h in seconds

	// DefaultSessionKey keys the selection state in single-user mode.
	DefaultSessionKey = "local"
)
