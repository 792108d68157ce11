package postgres

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS skin_analysis_handoff (
  id           TEXT        PRIMARY KEY,
  flow_id      TEXT        NOT NULL,
  result_json  JSONB       NOT NULL,
  image_key    TEXT        NOT NULL DEFAULT '',
  content_type TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL,
  expires_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_handoff_expires ON skin_analysis_handoff (expires_at);`

// EnsureSchema buat tabel handoff kalau belum ada
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
