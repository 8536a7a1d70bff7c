package domain

import (
	"context"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"
)

// BookingStore is the persistence boundary for the booking set. Load runs
// once at startup; SaveAll overwrites the whole collection after every
// successful mutation. There is no incremental patching.
type BookingStore interface {
	Load(ctx context.Context) ([]models.Booking, error)
	SaveAll(ctx context.Context, bookings []models.Booking) error
	Close() error
}

// SelectionRepository holds the ephemeral in-progress date selection,
// keyed by session. A missing state is reported as (nil, nil).
type SelectionRepository interface {
	GetSelection(ctx context.Context, session string) (*models.SelectionRange, error)
	SetSelection(ctx context.Context, session string, sel models.SelectionRange) error
	ClearSelection(ctx context.Context, session string) error
}

// EventPublisher carries tagged outcomes to whatever presentation layer
// is listening (dialogs, toasts). Rendering is not this module's concern.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
