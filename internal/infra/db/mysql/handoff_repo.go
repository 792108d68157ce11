package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/skinai/internal/domain/handoff"
)

type HandoffRepository struct {
	db *sql.DB
}

func NewHandoffRepository(db *sql.DB) *HandoffRepository {
	return &HandoffRepository{db: db}
}

// Put inserts or replaces a handoff entry
func (r *HandoffRepository) Put(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO skin_analysis_handoff
  (id, flow_id, result_json, image_key, content_type, created_at, expires_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  flow_id=VALUES(flow_id), result_json=VALUES(result_json), image_key=VALUES(image_key),
  content_type=VALUES(content_type), expires_at=VALUES(expires_at);
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
WHERE id=? AND expires_at > ?
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, id, now)
	var e domain.Entry
	var result string
	if err := row.Scan(&e.ID, &e.FlowID, &result, &e.ImageKey, &e.ContentType, &e.CreatedAt, &e.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	res, err := decodeResult(result)
	if err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	e.Result = res
	return &e, nil
}

// Delete removes an entry, missing rows are not an error
func (r *HandoffRepository) Delete(ctx context.Context, id domain.EntryID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM skin_analysis_handoff WHERE id=?;`, id)
	return err
}

// PurgeExpired deletes expired rows and returns their image keys
func (r *HandoffRepository) PurgeExpired(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, image_key FROM skin_analysis_handoff WHERE expires_at <= ?;`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids, keys []string
	for rows.Next() {
		var id, key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM skin_analysis_handoff WHERE id=?;`, id); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
