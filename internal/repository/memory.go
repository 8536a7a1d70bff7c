package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"
)

// MemorySelectionRepository keeps in-progress selections in process
// memory. It is the default backend and the failover target when Redis
// is unreachable.
type MemorySelectionRepository struct {
	selections sync.Map
	ttl        time.Duration
}

type memoryEntry struct {
	sel       models.SelectionRange
	expiresAt time.Time
}

func NewMemorySelectionRepository(ttl time.Duration) *MemorySelectionRepository {
	return &MemorySelectionRepository{ttl: ttl}
}

func (r *MemorySelectionRepository) GetSelection(ctx context.Context, session string) (*models.SelectionRange, error) {
	val, ok := r.selections.Load(session)
	if !ok {
		return nil, nil
	}
	entry := val.(*memoryEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		// An expired selection counts as abandoned.
		r.selections.Delete(session)
		return nil, nil
	}
	sel := entry.sel
	return &sel, nil
}

func (r *MemorySelectionRepository) SetSelection(ctx context.Context, session string, sel models.SelectionRange) error {
	r.selections.Store(session, &memoryEntry{
		sel:       sel,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemorySelectionRepository) ClearSelection(ctx context.Context, session string) error {
	r.selections.Delete(session)
	return nil
}
