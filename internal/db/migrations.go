package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS presets (
			name         TEXT PRIMARY KEY,
			title        TEXT NOT NULL DEFAULT '',
			subtitle     TEXT NOT NULL DEFAULT '',
			image_path   TEXT NOT NULL DEFAULT '',
			button_title TEXT NOT NULL DEFAULT '',
			button_rich  TEXT NOT NULL DEFAULT '[]',
			style        TEXT NOT NULL DEFAULT '{}',
			created_at   TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating presets table: %w", err)
	}

	return nil
}
