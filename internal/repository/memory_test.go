package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySelectionRepository(t *testing.T) {
	repo := NewMemorySelectionRepository(time.Hour)
	ctx := context.Background()

	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	t.Run("SetAndGetSelection", func(t *testing.T) {
		err := repo.SetSelection(ctx, "local", models.SelectionRange{Start: &start})
		require.NoError(t, err)

		got, err := repo.GetSelection(ctx, "local")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.IsPending())
		assert.Equal(t, start, *got.Start)
	})

	t.Run("MissingSessionIsNil", func(t *testing.T) {
		got, err := repo.GetSelection(ctx, "other")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearSelection", func(t *testing.T) {
		err := repo.ClearSelection(ctx, "local")
		require.NoError(t, err)

		got, _ := repo.GetSelection(ctx, "local")
		assert.Nil(t, got)
	})

	t.Run("ExpiredSelectionIsAbandoned", func(t *testing.T) {
		short := NewMemorySelectionRepository(10 * time.Millisecond)
		require.NoError(t, short.SetSelection(ctx, "local", models.SelectionRange{Start: &start}))

		time.Sleep(20 * time.Millisecond)
		got, err := short.GetSelection(ctx, "local")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
