// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/hoarding/internal/preset"
)

// SQLite implements preset.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Save inserts a preset or replaces the existing one with the same name.
func (s *SQLite) Save(ctx context.Context, p *preset.Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}

	rich, err := json.Marshal(p.ButtonRich)
	if err != nil {
		return fmt.Errorf("encoding button spans: %w", err)
	}
	style, err := json.Marshal(p.Style)
	if err != nil {
		return fmt.Errorf("encoding style: %w", err)
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO presets (name, title, subtitle, image_path, button_title, button_rich, style, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			image_path = excluded.image_path,
			button_title = excluded.button_title,
			button_rich = excluded.button_rich,
			style = excluded.style
	`

	_, err = s.db.ExecContext(ctx, query,
		p.Name,
		p.Title,
		p.Subtitle,
		p.ImagePath,
		p.ButtonTitle,
		string(rich),
		string(style),
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving preset: %w", err)
	}

	return nil
}

// Get retrieves a preset by name. It returns nil, nil when none exists.
func (s *SQLite) Get(ctx context.Context, name string) (*preset.Preset, error) {
	query := `
		SELECT name, title, subtitle, image_path, button_title, button_rich, style, created_at
		FROM presets
		WHERE name = ?
	`

	p, err := scanPreset(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying preset: %w", err)
	}
	return p, nil
}

// List returns all presets ordered by name.
func (s *SQLite) List(ctx context.Context) ([]*preset.Preset, error) {
	query := `
		SELECT name, title, subtitle, image_path, button_title, button_rich, style, created_at
		FROM presets
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying presets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var presets []*preset.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presets: %w", err)
	}

	return presets, nil
}

// Delete removes a preset by name.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return preset.ErrNotFound
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*preset.Preset, error) {
	var (
		p         preset.Preset
		rich      string
		style     string
		createdAt sql.NullString
	)

	err := row.Scan(
		&p.Name,
		&p.Title,
		&p.Subtitle,
		&p.ImagePath,
		&p.ButtonTitle,
		&rich,
		&style,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(rich), &p.ButtonRich); err != nil {
		return nil, fmt.Errorf("decoding button spans: %w", err)
	}
	if len(p.ButtonRich) == 0 {
		p.ButtonRich = nil
	}
	if err := json.Unmarshal([]byte(style), &p.Style); err != nil {
		return nil, fmt.Errorf("decoding style: %w", err)
	}
	if createdAt.Valid {
		if t, err := parseTime(createdAt.String); err == nil {
			p.CreatedAt = t
		}
	}

	return &p, nil
}

// parseTime accepts RFC 3339 and SQLite's default timestamp format.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
