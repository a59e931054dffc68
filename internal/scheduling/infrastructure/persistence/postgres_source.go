package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wayfarerhq/wayfarer/internal/scheduling/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	booking_type TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'confirmed',
	depart_date TIMESTAMPTZ,
	scheduled_time TIMESTAMPTZ,
	appointment_time TIMESTAMPTZ,
	destination TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);

CREATE TABLE IF NOT EXISTS calendar_events (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_calendar_events_user_start ON calendar_events(user_id, start_time);
`

// PostgresScheduleSource implements domain.ScheduleSource over PostgreSQL.
type PostgresScheduleSource struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleSource creates the source and ensures the schema exists.
func NewPostgresScheduleSource(ctx context.Context, pool *pgxpool.Pool) (*PostgresScheduleSource, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &PostgresScheduleSource{pool: pool}, nil
}

// UpcomingBookings returns non-past bookings ordered by their primary date.
func (s *PostgresScheduleSource) UpcomingBookings(ctx context.Context, userID string, limit int) ([]domain.BookingRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, booking_type, title, status, depart_date, scheduled_time, appointment_time, destination
		FROM bookings
		WHERE user_id = $1
		  AND (COALESCE(depart_date, scheduled_time, appointment_time) IS NULL
		       OR COALESCE(depart_date, scheduled_time, appointment_time) >= now())
		ORDER BY COALESCE(depart_date, scheduled_time, appointment_time)
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var records []domain.BookingRecord
	for rows.Next() {
		var (
			rec                 domain.BookingRecord
			bookingType, status string
		)
		if err := rows.Scan(&rec.ID, &bookingType, &rec.Title, &status,
			&rec.DepartDate, &rec.ScheduledTime, &rec.AppointmentTime, &rec.Destination); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		rec.BookingType = domain.ItemKind(bookingType)
		rec.Status = domain.BookingStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CalendarEvents returns events whose start falls within [start, end).
func (s *PostgresScheduleSource) CalendarEvents(ctx context.Context, userID string, start, end time.Time) ([]domain.CalendarEventRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, start_time, end_time
		FROM calendar_events
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var records []domain.CalendarEventRecord
	for rows.Next() {
		var rec domain.CalendarEventRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Start, &rec.End); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveBooking upserts a booking record.
func (s *PostgresScheduleSource) SaveBooking(ctx context.Context, userID string, rec domain.BookingRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bookings
			(id, user_id, booking_type, title, status, depart_date, scheduled_time, appointment_time, destination)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			booking_type = EXCLUDED.booking_type,
			title = EXCLUDED.title,
			status = EXCLUDED.status,
			depart_date = EXCLUDED.depart_date,
			scheduled_time = EXCLUDED.scheduled_time,
			appointment_time = EXCLUDED.appointment_time,
			destination = EXCLUDED.destination`,
		rec.ID, userID, string(rec.BookingType), rec.Title, string(rec.Status),
		rec.DepartDate, rec.ScheduledTime, rec.AppointmentTime, rec.Destination,
	)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// SaveEvent upserts a calendar event record.
func (s *PostgresScheduleSource) SaveEvent(ctx context.Context, userID string, rec domain.CalendarEventRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO calendar_events (id, user_id, title, description, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time`,
		rec.ID, userID, rec.Title, rec.Description, rec.Start, rec.End,
	)
	if err != nil {
		return fmt.Errorf("failed to save calendar event: %w", err)
	}
	return nil
}
