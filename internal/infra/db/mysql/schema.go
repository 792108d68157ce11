package mysql

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS skin_analysis_handoff (
  id           VARCHAR(64)  NOT NULL PRIMARY KEY,
  flow_id      VARCHAR(64)  NOT NULL,
  result_json  JSON         NOT NULL,
  image_key    VARCHAR(255) NOT NULL DEFAULT '',
  content_type VARCHAR(64)  NOT NULL DEFAULT '',
  created_at   DATETIME(3)  NOT NULL,
  expires_at   DATETIME(3)  NOT NULL,
  INDEX idx_handoff_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

// EnsureSchema buat tabel handoff kalau belum ada
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
