package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Git-LeAmaral/reserva-praia/internal/domain"
	"github.com/Git-LeAmaral/reserva-praia/internal/events"
	"github.com/Git-LeAmaral/reserva-praia/internal/metrics"
	"github.com/Git-LeAmaral/reserva-praia/internal/models"
	"github.com/Git-LeAmaral/reserva-praia/internal/selection"
)

// SelectionService drives the two-click range selection. The pending
// state lives in a SelectionRepository so it survives a calendar refresh
// but evaporates after the configured TTL; the booking set itself is
// read from the manager on every click.
type SelectionService struct {
	repo     domain.SelectionRepository
	manager  *BookingManager
	eventBus domain.EventPublisher
	logger   *zerolog.Logger

	// now is swappable in tests so "past day" checks are deterministic.
	now func() time.Time
}

// NewSelectionService wires the selection flow.
func NewSelectionService(repo domain.SelectionRepository, manager *BookingManager, eventBus domain.EventPublisher, logger *zerolog.Logger) *SelectionService {
	return &SelectionService{
		repo:     repo,
		manager:  manager,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Current returns the stored selection for a session, empty when none
// exists or when the repository cannot be reached.
func (s *SelectionService) Current(ctx context.Context, session string) models.SelectionRange {
	stored, err := s.repo.GetSelection(ctx, session)
	if err != nil {
		s.logger.Error().Err(err).Str("session", session).Msg("Failed to read selection, treating as empty")
		return models.SelectionRange{}
	}
	if stored == nil {
		return models.SelectionRange{}
	}
	return *stored
}

// ClickDay advances the selection state machine by one calendar click
// and persists the resulting state. The outcome tells the caller what
// happened; completed outcomes carry the confirmed range and leave the
// stored selection empty for the next round.
func (s *SelectionService) ClickDay(ctx context.Context, session string, day time.Time) (selection.Outcome, error) {
	state := s.Current(ctx, session)
	next, outcome := selection.Click(state, day, s.now(), s.manager.Bookings())

	if next.IsEmpty() {
		if err := s.repo.ClearSelection(ctx, session); err != nil {
			s.logger.Error().Err(err).Str("session", session).Msg("Failed to clear selection")
		}
	} else {
		if err := s.repo.SetSelection(ctx, session, next); err != nil {
			s.logger.Error().Err(err).Str("session", session).Msg("Failed to store selection")
		}
	}

	switch outcome.Kind {
	case selection.OutcomeCompleted:
		start, end := outcome.Start, outcome.End
		s.publish(events.EventSelectionCompleted, events.SelectionEventPayload{
			Session: session,
			Start:   &start,
			End:     &end,
		})
	case selection.OutcomeDateUnavailable, selection.OutcomeRangeConflict:
		metrics.IncRejection(outcome.Kind)
		s.publish(events.EventSelectionRejected, events.SelectionEventPayload{
			Session: session,
			Reason:  outcome.Kind,
		})
	}

	s.logger.Debug().
		Str("session", session).
		Time("day", day).
		Str("outcome", outcome.Kind).
		Msg("Calendar click")
	return outcome, nil
}

// Abandon drops any pending selection for the session, e.g. when the
// user closes the booking dialog without confirming.
func (s *SelectionService) Abandon(ctx context.Context, session string) error {
	return s.repo.ClearSelection(ctx, session)
}

func (s *SelectionService) publish(eventType string, payload events.SelectionEventPayload) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to publish event")
	}
}
