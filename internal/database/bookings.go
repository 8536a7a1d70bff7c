package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/models"
)

const dateLayout = "2006-01-02"

// Load reads the whole booking set. It is called once at startup.
// Absent data and corrupt rows degrade to an empty (or partial) set with
// a warning rather than failing the application.
func (s *Store) Load(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT id, start_date, end_date,
	                 titular_name, titular_national_id, titular_age, titular_phone, titular_email,
	                 companions, total_days, daily_rate, total_price, created_at, updated_at
	          FROM bookings`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Msg("booking store unreadable, starting with an empty set")
		return []models.Booking{}, nil
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			s.logger.Warn().Err(err).Msg("skipping corrupt booking row")
			continue
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	s.logger.Info().Int("count", len(bookings)).Msg("bookings loaded")
	return bookings, nil
}

// SaveAll overwrites the stored collection with the given set in a single
// transaction. There is no incremental patching; the set in memory is the
// source of truth and this is its synchronous snapshot.
func (s *Store) SaveAll(ctx context.Context, bookings []models.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}

	query := `INSERT INTO bookings (
	            id, start_date, end_date,
	            titular_name, titular_national_id, titular_age, titular_phone, titular_email,
	            companions, total_days, daily_rate, total_price, created_at, updated_at
	          ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, b := range bookings {
		companions, err := json.Marshal(b.Companions)
		if err != nil {
			return fmt.Errorf("failed to marshal companions for booking %s: %w", b.ID, err)
		}

		_, err = tx.ExecContext(ctx, query,
			b.ID,
			b.StartDate.Format(dateLayout),
			b.EndDate.Format(dateLayout),
			b.Titular.Name,
			b.Titular.NationalID,
			b.Titular.Age,
			b.Titular.Phone,
			b.Titular.Email,
			string(companions),
			b.TotalDays,
			b.DailyRate,
			b.TotalPrice,
			b.CreatedAt,
			b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert booking %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

func scanBooking(rows *sql.Rows) (models.Booking, error) {
	var b models.Booking
	var startStr, endStr, companions string
	err := rows.Scan(
		&b.ID, &startStr, &endStr,
		&b.Titular.Name, &b.Titular.NationalID, &b.Titular.Age, &b.Titular.Phone, &b.Titular.Email,
		&companions, &b.TotalDays, &b.DailyRate, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to scan booking: %w", err)
	}

	b.StartDate, err = time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to parse start date %q: %w", startStr, err)
	}
	b.EndDate, err = time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to parse end date %q: %w", endStr, err)
	}

	if companions != "" {
		if err := json.Unmarshal([]byte(companions), &b.Companions); err != nil {
			return models.Booking{}, fmt.Errorf("failed to parse companions for booking %s: %w", b.ID, err)
		}
	}
	return b, nil
}
