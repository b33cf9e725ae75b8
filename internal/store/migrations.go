package store

import "fmt"

// migrate runs database migrations.
func (s *Snapshot) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS appointments (
			id               TEXT PRIMARY KEY,
			start_time       DATETIME NOT NULL,
			duration_minutes INTEGER NOT NULL,
			barber_id        TEXT NOT NULL,
			client_id        TEXT NOT NULL,
			client_name      TEXT,
			service          TEXT,
			status           TEXT NOT NULL DEFAULT 'scheduled',
			fetched_at       DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_start ON appointments(start_time);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating appointments table: %w", err)
	}
	return nil
}
