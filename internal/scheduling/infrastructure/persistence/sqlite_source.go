package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	booking_type TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'confirmed',
	depart_date TEXT,
	scheduled_time TEXT,
	appointment_time TEXT,
	destination TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);

CREATE TABLE IF NOT EXISTS calendar_events (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	start_time TEXT NOT NULL,
	end_time TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calendar_events_user_start ON calendar_events(user_id, start_time);
`

// SQLiteScheduleSource implements domain.ScheduleSource over SQLite, and
// carries the write side used for seeding and CRUD.
type SQLiteScheduleSource struct {
	db *sql.DB
}

// NewSQLiteScheduleSource creates the source and ensures the schema exists.
func NewSQLiteScheduleSource(db *sql.DB) (*SQLiteScheduleSource, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &SQLiteScheduleSource{db: db}, nil
}

// UpcomingBookings returns non-past bookings ordered by their primary
// date. Undated records are included; normalization decides their fate.
func (s *SQLiteScheduleSource) UpcomingBookings(ctx context.Context, userID string, limit int) ([]domain.BookingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, booking_type, title, status, depart_date, scheduled_time, appointment_time, destination
		FROM bookings
		WHERE user_id = ?
		  AND (COALESCE(depart_date, scheduled_time, appointment_time) IS NULL
		       OR COALESCE(depart_date, scheduled_time, appointment_time) >= ?)
		ORDER BY COALESCE(depart_date, scheduled_time, appointment_time)
		LIMIT ?`,
		userID, time.Now().UTC().Format(time.RFC3339), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var records []domain.BookingRecord
	for rows.Next() {
		var (
			rec                      domain.BookingRecord
			bookingType, status      string
			depart, scheduled, appt  sql.NullString
		)
		if err := rows.Scan(&rec.ID, &bookingType, &rec.Title, &status, &depart, &scheduled, &appt, &rec.Destination); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		rec.BookingType = domain.ItemKind(bookingType)
		rec.Status = domain.BookingStatus(status)
		rec.DepartDate = parseNullTime(depart)
		rec.ScheduledTime = parseNullTime(scheduled)
		rec.AppointmentTime = parseNullTime(appt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CalendarEvents returns events whose start falls within [start, end).
func (s *SQLiteScheduleSource) CalendarEvents(ctx context.Context, userID string, start, end time.Time) ([]domain.CalendarEventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, start_time, end_time
		FROM calendar_events
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`,
		userID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var records []domain.CalendarEventRecord
	for rows.Next() {
		var (
			rec      domain.CalendarEventRecord
			startStr string
			endStr   sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		eventStart, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt start_time for event %s: %w", rec.ID, err)
		}
		rec.Start = eventStart
		rec.End = parseNullTime(endStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveBooking inserts or replaces a booking record.
func (s *SQLiteScheduleSource) SaveBooking(ctx context.Context, userID string, rec domain.BookingRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bookings
			(id, user_id, booking_type, title, status, depart_date, scheduled_time, appointment_time, destination, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, userID, string(rec.BookingType), rec.Title, string(rec.Status),
		formatNullTime(rec.DepartDate), formatNullTime(rec.ScheduledTime), formatNullTime(rec.AppointmentTime),
		rec.Destination, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// SaveEvent inserts or replaces a calendar event record.
func (s *SQLiteScheduleSource) SaveEvent(ctx context.Context, userID string, rec domain.CalendarEventRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO calendar_events
			(id, user_id, title, description, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, userID, rec.Title, rec.Description,
		rec.Start.UTC().Format(time.RFC3339), formatNullTime(rec.End),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save calendar event: %w", err)
	}
	return nil
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}
