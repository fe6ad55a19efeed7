package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRow is a planned session: a template payload pinned to a date.
// TemplateID is nil for one-off sessions composed without a saved template.
type SessionRow struct {
	ID          uuid.UUID       `json:"id"`
	TemplateID  *uuid.UUID      `json:"templateId,omitempty"`
	Title       string          `json:"title"`
	ScheduledOn time.Time       `json:"scheduledOn"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InsertSession stores a planned session. Returns true if inserted, false if
// the ID already exists.
func (db *DB) InsertSession(ctx context.Context, row SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, template_id, title, scheduled_on, payload, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.TemplateID, row.Title, row.ScheduledOn, row.Payload, row.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySessions retrieves planned sessions in a date range, soonest first.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time) ([]SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, template_id, title, scheduled_on, payload, created_at
		 FROM sessions
		 WHERE scheduled_on >= $1 AND scheduled_on < $2
		 ORDER BY scheduled_on ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []SessionRow
	for rows.Next() {
		var s SessionRow
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.Title, &s.ScheduledOn, &s.Payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
