package models

import "time"

// SelectionRange is the in-progress two-click date selection. It is
// ephemeral UI state: at most one exists at a time and it is never part
// of the persisted booking set. End is only populated transiently while
// a completed range is being handed to the consumer.
type SelectionRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// IsEmpty reports whether no start date has been picked yet.
func (s SelectionRange) IsEmpty() bool {
	return s.Start == nil
}

// IsPending reports whether a start date is picked and the end is still open.
func (s SelectionRange) IsPending() bool {
	return s.Start != nil && s.End == nil
}
