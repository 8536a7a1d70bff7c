package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	logger := zerolog.Nop()
	store, err := NewStore(filepath.Join(t.TempDir(), "bookings.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleBooking(id string, start, end time.Time) models.Booking {
	return models.Booking{
		ID:        id,
		StartDate: start,
		EndDate:   end,
		Titular: models.Titular{
			Name:       "João da Silva",
			NationalID: "000.000.000-00",
			Age:        "30",
			Phone:      "(11) 99999-9999",
			Email:      "joao@exemplo.com",
		},
		Companions: []models.Companion{
			{Name: "Maria da Silva", NationalID: "111.111.111-11", Age: "28"},
		},
		TotalDays:  3,
		DailyRate:  300,
		TotalPrice: 900,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "bookings.db")
	logger := zerolog.Nop()

	store, err := NewStore(dbPath, &logger)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, dbPath)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	bookings, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestStore_SaveAllAndLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local)
	set := []models.Booking{sampleBooking("b-1", start, end)}

	require.NoError(t, store.SaveAll(ctx, set))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "b-1", got.ID)
	assert.True(t, start.Equal(got.StartDate))
	assert.True(t, end.Equal(got.EndDate))
	assert.Equal(t, "João da Silva", got.Titular.Name)
	require.Len(t, got.Companions, 1)
	assert.Equal(t, "Maria da Silva", got.Companions[0].Name)
	assert.Equal(t, 3, got.TotalDays)
	assert.Equal(t, 900.0, got.TotalPrice)
}

func TestStore_SaveAllOverwrites(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local)

	require.NoError(t, store.SaveAll(ctx, []models.Booking{
		sampleBooking("b-1", start, end),
		sampleBooking("b-2", start.AddDate(0, 1, 0), end.AddDate(0, 1, 0)),
	}))

	// A later snapshot fully replaces the previous one.
	require.NoError(t, store.SaveAll(ctx, []models.Booking{
		sampleBooking("b-2", start.AddDate(0, 1, 0), end.AddDate(0, 1, 0)),
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b-2", loaded[0].ID)
}

func TestStore_SaveAllEmptySet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	require.NoError(t, store.SaveAll(ctx, []models.Booking{sampleBooking("b-1", start, start)}))
	require.NoError(t, store.SaveAll(ctx, nil))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_CorruptRowIsSkipped(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	require.NoError(t, store.SaveAll(ctx, []models.Booking{sampleBooking("ok", start, start)}))

	// Corrupt a row behind the store's back.
	_, err := store.db.Exec(`INSERT INTO bookings (
	        id, start_date, end_date, titular_name, companions, total_days, daily_rate, total_price
	    ) VALUES ('bad', 'not-a-date', '2024-06-05', 'X', '[]', 1, 300, 300)`)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ok", loaded[0].ID)
}

func TestStore_Ping(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.PingContext(context.Background()))
}
