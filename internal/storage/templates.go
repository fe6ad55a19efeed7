package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TemplateRow is a stored session template. Payload is the normalized
// submission payload as produced by the draft controller; the extracted
// columns exist for listing and filtering without decoding it.
type TemplateRow struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Discipline string          `json:"type"`
	Visibility string          `json:"visibility"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// InsertTemplate stores a normalized template. Returns true if inserted,
// false if the ID already exists.
func (db *DB) InsertTemplate(ctx context.Context, row TemplateRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO templates (id, title, discipline, visibility, payload, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.Title, row.Discipline, row.Visibility, row.Payload, row.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryTemplates retrieves templates, newest first, optionally filtered by
// discipline.
func (db *DB) QueryTemplates(ctx context.Context, discipline string) ([]TemplateRow, error) {
	query := `SELECT id, title, discipline, visibility, payload, created_at
	          FROM templates`
	args := []any{}
	if discipline != "" {
		query += ` WHERE discipline = $1`
		args = append(args, discipline)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []TemplateRow
	for rows.Next() {
		var t TemplateRow
		if err := rows.Scan(&t.ID, &t.Title, &t.Discipline, &t.Visibility, &t.Payload, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetTemplate retrieves a single template by ID.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (*TemplateRow, error) {
	var t TemplateRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, title, discipline, visibility, payload, created_at
		 FROM templates WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Discipline, &t.Visibility, &t.Payload, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}
	return &t, nil
}

// DeleteTemplate removes a template. Returns true if a row was deleted.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
