package models

import "time"

// Titular is the primary, responsible guest on a booking.
type Titular struct {
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	Age        string `json:"age"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Companion is a secondary guest attached to a booking.
type Companion struct {
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	Age        string `json:"age"`
}

// Booking is a confirmed reservation of the property for an inclusive
// date range. TotalDays and TotalPrice are derived from the range and
// DailyRate; they are stored for display but must stay consistent after
// every mutation.
type Booking struct {
	ID         string      `json:"id"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Titular    Titular     `json:"titular"`
	Companions []Companion `json:"companions,omitempty"`
	TotalDays  int         `json:"totalDays"`
	DailyRate  float64     `json:"dailyRate"`
	TotalPrice float64     `json:"totalPrice"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// People returns the total person count: titular plus companions.
func (b *Booking) People() int {
	return 1 + len(b.Companions)
}

// TotalsConsistent reports whether the stored totals match the derived
// price invariant TotalPrice == TotalDays * DailyRate.
func (b *Booking) TotalsConsistent() bool {
	return b.TotalPrice == float64(b.TotalDays)*b.DailyRate
}
