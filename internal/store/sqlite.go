// Package store provides a SQLite snapshot of the last fetched appointment
// window, so the calendar can render stale-first while the backend is slow
// or unreachable. It is a cache of server state, never a source of truth.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/figaroapp/figaro/internal/appointment"
)

// Snapshot is a SQLite-backed appointment cache.
type Snapshot struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database and runs migrations.
func Open(path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to snapshot database: %w", err)
	}

	s := &Snapshot{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// SaveWindow replaces the cached appointments whose start date falls within
// [from, to] with the given set.
func (s *Snapshot) SaveWindow(ctx context.Context, from, to time.Time, appts []*appointment.Appointment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM appointments WHERE date(start_time) >= ? AND date(start_time) <= ?`,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("clearing snapshot window: %w", err)
	}

	insert := `
		INSERT INTO appointments (
			id, start_time, duration_minutes, barber_id, client_id,
			client_name, service, status, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC().Format(time.RFC3339)
	for _, a := range appts {
		if a == nil {
			continue
		}
		_, err := tx.ExecContext(ctx, insert,
			a.ID,
			a.StartTime.Format(time.RFC3339),
			a.DurationMinutes,
			a.BarberID,
			a.ClientID,
			a.ClientName,
			a.Service,
			string(a.Status),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting appointment %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// LoadWindow returns the cached appointments whose start date falls within
// [from, to], ordered by start time.
func (s *Snapshot) LoadWindow(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_time, duration_minutes, barber_id, client_id,
		       client_name, service, status
		FROM appointments
		WHERE date(start_time) >= ? AND date(start_time) <= ?
		ORDER BY start_time
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var appts []*appointment.Appointment
	for rows.Next() {
		var (
			a         appointment.Appointment
			startTime string
			status    string
		)
		if err := rows.Scan(
			&a.ID, &startTime, &a.DurationMinutes, &a.BarberID, &a.ClientID,
			&a.ClientName, &a.Service, &status,
		); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		start, err := time.Parse(time.RFC3339, startTime)
		if err != nil {
			return nil, fmt.Errorf("parsing start time for %s: %w", a.ID, err)
		}
		a.StartTime = start
		a.Status = appointment.ParseStatus(status)
		appts = append(appts, &a)
	}
	return appts, rows.Err()
}

// Close releases the database handle.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
