package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Git-LeAmaral/reserva-praia/internal/availability"
	"github.com/Git-LeAmaral/reserva-praia/internal/config"
	"github.com/Git-LeAmaral/reserva-praia/internal/domain"
	"github.com/Git-LeAmaral/reserva-praia/internal/events"
	"github.com/Git-LeAmaral/reserva-praia/internal/metrics"
	"github.com/Git-LeAmaral/reserva-praia/internal/models"
	"github.com/Git-LeAmaral/reserva-praia/internal/pricing"
)

const dateLayout = "2006-01-02"

// CreateRequest carries the data for a new booking. Dates come from the
// calendar so they are already ordered; DailyRate zero means "use the
// configured default".
type CreateRequest struct {
	StartDate  time.Time
	EndDate    time.Time
	DailyRate  float64
	Titular    models.Titular
	Companions []models.Companion
}

// EditRequest carries a full replacement for an existing booking. Dates
// arrive as raw form input and are validated strictly, unlike creation.
type EditRequest struct {
	StartDate  string
	EndDate    string
	DailyRate  float64
	Titular    models.Titular
	Companions []models.Companion
}

// DayRevenue is the earned amount for one day of a month. Days with no
// active booking are omitted entirely rather than reported as zero.
type DayRevenue struct {
	Day    int
	Amount float64
}

// BookingManager owns the full booking set. It keeps an in-memory
// snapshot as the source of truth and writes the whole set through the
// store after every mutation; a write failure is logged but never rolls
// the mutation back.
//
// The manager is not safe for concurrent mutation, matching the
// single-writer model of the calendar it serves. Wrap it if you need
// more than one writer.
type BookingManager struct {
	store    domain.BookingStore
	eventBus domain.EventPublisher
	cfg      config.BookingConfig
	logger   *zerolog.Logger

	bookings []models.Booking
}

// NewBookingManager wires the manager; call Load before serving.
func NewBookingManager(store domain.BookingStore, eventBus domain.EventPublisher, cfg config.BookingConfig, logger *zerolog.Logger) *BookingManager {
	return &BookingManager{
		store:    store,
		eventBus: eventBus,
		cfg:      cfg,
		logger:   logger,
	}
}

// Load pulls the persisted set into memory. Bookings whose stored totals
// no longer match days*rate are re-derived instead of rejected, so a set
// written by an older version still loads cleanly.
func (m *BookingManager) Load(ctx context.Context) error {
	loaded, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}
	stored := make([]models.Booking, len(loaded))
	copy(stored, loaded)
	for i := range stored {
		if !stored[i].TotalsConsistent() {
			m.logger.Warn().
				Str("booking_id", stored[i].ID).
				Float64("stored_total", stored[i].TotalPrice).
				Msg("Stored total out of sync, re-deriving from days and rate")
			stored[i].TotalDays = pricing.StayDays(stored[i].StartDate, stored[i].EndDate)
			stored[i].TotalPrice = pricing.TotalPrice(stored[i].TotalDays, stored[i].DailyRate)
		}
	}
	m.bookings = stored
	m.logger.Info().Int("count", len(stored)).Msg("Bookings loaded")
	return nil
}

// Bookings returns a copy of the current set.
func (m *BookingManager) Bookings() []models.Booking {
	out := make([]models.Booking, len(m.bookings))
	copy(out, m.bookings)
	return out
}

// CreateBooking validates the request, re-verifies availability against
// the current set and appends the new booking. An inverted range is
// clamped to a one-day stay rather than rejected; edits are stricter.
func (m *BookingManager) CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		metrics.IncRejection("missing_dates")
		return nil, ErrMissingDates
	}
	if err := m.validateGuests(req.Titular, req.Companions); err != nil {
		return nil, err
	}

	start := availability.StartOfDay(req.StartDate)
	end := availability.StartOfDay(req.EndDate)
	if end.Before(start) {
		// The calendar never produces an inverted range; a direct caller
		// that does gets a one-day stay instead of a rejection.
		end = start
	}
	if availability.IsRangeBooked(start, end, m.bookings, "") {
		metrics.IncRejection("range_conflict")
		return nil, ErrRangeConflict
	}

	rate := req.DailyRate
	if rate == 0 {
		rate = m.cfg.DailyRate
	}
	days := pricing.StayDays(start, end)
	now := time.Now()

	booking := models.Booking{
		ID:         uuid.NewString(),
		StartDate:  start,
		EndDate:    end,
		Titular:    req.Titular,
		Companions: req.Companions,
		TotalDays:  days,
		DailyRate:  rate,
		TotalPrice: pricing.TotalPrice(days, rate),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.bookings = append(m.bookings, booking)
	m.persist(ctx)
	metrics.IncMutation("create")
	m.publishBookingEvent(events.EventBookingCreated, booking)

	m.logger.Info().
		Str("booking_id", booking.ID).
		Time("start", booking.StartDate).
		Time("end", booking.EndDate).
		Int("days", booking.TotalDays).
		Float64("total", booking.TotalPrice).
		Msg("Booking created")
	return &booking, nil
}

// UpdateBooking replaces an existing booking's fields wholesale. The
// identifier and creation timestamp survive the edit; totals are always
// recomputed from the validated dates. Editing a booking back to its own
// dates is valid: the conflict check excludes the booking itself.
//
// An unknown id is a no-op, not an error.
func (m *BookingManager) UpdateBooking(ctx context.Context, id string, req EditRequest) (*models.Booking, error) {
	idx := m.indexOf(id)
	if idx < 0 {
		m.logger.Warn().Str("booking_id", id).Msg("Update for unknown booking ignored")
		return nil, nil
	}

	start, end, err := parseEditRange(req.StartDate, req.EndDate)
	if err != nil {
		metrics.IncRejection(rejectionReason(err))
		return nil, err
	}
	if err := m.validateGuests(req.Titular, req.Companions); err != nil {
		return nil, err
	}
	if availability.IsRangeBooked(start, end, m.bookings, id) {
		metrics.IncRejection("range_conflict")
		return nil, ErrRangeConflict
	}

	rate := req.DailyRate
	if rate == 0 {
		rate = m.bookings[idx].DailyRate
	}
	if rate == 0 {
		rate = m.cfg.DailyRate
	}
	days := pricing.StayDays(start, end)

	updated := m.bookings[idx]
	updated.StartDate = start
	updated.EndDate = end
	updated.Titular = req.Titular
	updated.Companions = req.Companions
	updated.TotalDays = days
	updated.DailyRate = rate
	updated.TotalPrice = pricing.TotalPrice(days, rate)
	updated.UpdatedAt = time.Now()
	m.bookings[idx] = updated

	m.persist(ctx)
	metrics.IncMutation("update")
	m.publishBookingEvent(events.EventBookingUpdated, updated)

	m.logger.Info().
		Str("booking_id", updated.ID).
		Time("start", updated.StartDate).
		Time("end", updated.EndDate).
		Float64("total", updated.TotalPrice).
		Msg("Booking updated")
	return &updated, nil
}

// DeleteBooking removes a booking by id. Deleting an absent id is a
// no-op and reports false.
func (m *BookingManager) DeleteBooking(ctx context.Context, id string) bool {
	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}
	removed := m.bookings[idx]
	m.bookings = append(m.bookings[:idx], m.bookings[idx+1:]...)

	m.persist(ctx)
	metrics.IncMutation("delete")
	m.publishBookingEvent(events.EventBookingDeleted, removed)

	m.logger.Info().Str("booking_id", id).Msg("Booking deleted")
	return true
}

// BookingsForMonth returns bookings whose stay touches the given month,
// ordered by start date. A booking spanning a month boundary appears in
// both months.
func (m *BookingManager) BookingsForMonth(year int, month time.Month) []models.Booking {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	var out []models.Booking
	for _, b := range m.bookings {
		if availability.RangesOverlap(b.StartDate, b.EndDate, first, last) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

// DailyRevenue sums, per day of the month, the daily rate of every
// booking active that day. Each booking contributes at its own rate, so
// historical bookings keep the price they were sold at.
func (m *BookingManager) DailyRevenue(year int, month time.Month) []DayRevenue {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
	amounts := make(map[int]float64)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		for _, b := range m.bookings {
			if availability.RangesOverlap(b.StartDate, b.EndDate, date, date) {
				amounts[day] += b.DailyRate
			}
		}
	}

	out := make([]DayRevenue, 0, len(amounts))
	for day := 1; day <= daysInMonth; day++ {
		if amount, ok := amounts[day]; ok {
			out = append(out, DayRevenue{Day: day, Amount: amount})
		}
	}
	return out
}

// MonthRevenue is the sum of DailyRevenue over the month.
func (m *BookingManager) MonthRevenue(year int, month time.Month) float64 {
	var total float64
	for _, d := range m.DailyRevenue(year, month) {
		total += d.Amount
	}
	return total
}

func (m *BookingManager) indexOf(id string) int {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *BookingManager) validateGuests(titular models.Titular, companions []models.Companion) error {
	if titular.Name == "" || titular.NationalID == "" || titular.Age == "" || titular.Phone == "" || titular.Email == "" {
		metrics.IncRejection("missing_titular")
		return ErrMissingTitular
	}
	if len(companions) > m.cfg.MaxCompanions {
		metrics.IncRejection("too_many_guests")
		return ErrTooManyGuests
	}
	return nil
}

// persist writes the whole set through the store. The in-memory set
// stays authoritative even when the write fails; the next successful
// mutation rewrites everything anyway.
func (m *BookingManager) persist(ctx context.Context) {
	if err := m.store.SaveAll(ctx, m.bookings); err != nil {
		m.logger.Error().Err(err).Msg("Failed to persist bookings")
	}
}

func (m *BookingManager) publishBookingEvent(eventType string, b models.Booking) {
	if m.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID:   b.ID,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		TitularName: b.Titular.Name,
		People:      b.People(),
		TotalDays:   b.TotalDays,
		DailyRate:   b.DailyRate,
		TotalPrice:  b.TotalPrice,
	}
	if err := m.eventBus.PublishJSON(eventType, payload); err != nil {
		m.logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to publish event")
	}
}

// parseEditRange applies the strict edit rules: both dates must parse
// and the end must fall strictly after the start.
func parseEditRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, ErrMissingDates
	}
	start, err := time.ParseInLocation(dateLayout, startRaw, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMissingDates
	}
	end, err := time.ParseInLocation(dateLayout, endRaw, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMissingDates
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvertedRange
	}
	return start, end, nil
}

func rejectionReason(err error) string {
	switch err {
	case ErrInvertedRange:
		return "inverted_range"
	default:
		return "missing_dates"
	}
}
