package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/domain"
	"github.com/Git-LeAmaral/reserva-praia/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSelectionRepository prefers the primary (Redis) and falls back
// to the in-memory repository when it fails, probing the primary again
// after a minute.
type FailoverSelectionRepository struct {
	primary   domain.SelectionRepository
	fallback  domain.SelectionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSelectionRepository(primary, fallback domain.SelectionRepository, logger *zerolog.Logger) *FailoverSelectionRepository {
	return &FailoverSelectionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSelectionRepository) GetSelection(ctx context.Context, session string) (*models.SelectionRange, error) {
	if !r.isDown.Load() {
		sel, err := r.primary.GetSelection(ctx, session)
		if err == nil {
			return sel, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		sel, err := r.primary.GetSelection(ctx, session)
		if err == nil {
			r.isDown.Store(false)
			return sel, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetSelection(ctx, session)
}

func (r *FailoverSelectionRepository) SetSelection(ctx context.Context, session string, sel models.SelectionRange) error {
	if !r.isDown.Load() {
		err := r.primary.SetSelection(ctx, session, sel)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SetSelection(ctx, session, sel)
}

func (r *FailoverSelectionRepository) ClearSelection(ctx context.Context, session string) error {
	if !r.isDown.Load() {
		err := r.primary.ClearSelection(ctx, session)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.ClearSelection(ctx, session)
}

func (r *FailoverSelectionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary selection repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}
