package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	domain "github.com/bryanwahyu/skinai/internal/domain/handoff"
)

type HandoffRepository struct {
	db *sql.DB
}

func NewHandoffRepository(db *sql.DB) *HandoffRepository {
	return &HandoffRepository{db: db}
}

// Put inserts or updates a handoff entry
func (r *HandoffRepository) Put(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO skin_analysis_handoff
  (id, flow_id, result_json, image_key, content_type, created_at, expires_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  flow_id=EXCLUDED.flow_id,
  result_json=EXCLUDED.result_json,
  image_key=EXCLUDED.image_key,
  content_type=EXCLUDED.content_type,
  expires_at=EXCLUDED.expires_at;
`
	result, err := encodeResult(e.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q,
		e.ID, stringOrDash(e.FlowID), result, e.ImageKey, e.ContentType, createdAt, e.ExpiresAt,
	)
	return err
}

// Get returns an entry that has not expired yet
func (r *HandoffRepository) Get(ctx context.Context, id domain.EntryID, now time.Time) (*domain.Entry, error) {
	const q = `
SELECT id, flow_id, result_json, image_key, content_type, created_at, expires_at
FROM skin_analysis_handoff
WHERE id=$1 AND expires_at > $2
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, id, now)
	var e domain.Entry
	var result []byte
	if err := row.Scan(&e.ID, &e.FlowID, &result, &e.ImageKey, &e.ContentType, &e.CreatedAt, &e.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var res analysis.Result
	if err := json.Unmarshal(result, &res); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	e.Result = &res
	return &e, nil
}

// Delete removes an entry, missing rows are not an error
func (r *HandoffRepository) Delete(ctx context.Context, id domain.EntryID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM skin_analysis_handoff WHERE id=$1;`, id)
	return err
}

// PurgeExpired deletes expired rows in one statement and returns their image keys
func (r *HandoffRepository) PurgeExpired(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `DELETE FROM skin_analysis_handoff WHERE expires_at <= $1 RETURNING image_key;`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
