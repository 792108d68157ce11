package handoff

import (
	"errors"
	"time"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
)

// DefaultTTL berapa lama hasil analisa bisa dibuka dari halaman results
const DefaultTTL = 30 * time.Minute

// ErrNotFound entry tidak ada atau sudah expired
var ErrNotFound = errors.New("analysis result not found or expired")

// EntryID identifier yang dibawa ke halaman results
type EntryID string

// Entry hasil analisa + referensi foto sumber, transient
type Entry struct {
	ID          EntryID          `json:"id"`
	FlowID      string           `json:"flow_id"`
	Result      *analysis.Result `json:"result"`
	ImageKey    string           `json:"-"`
	ContentType string           `json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Expired relatif terhadap now
func (e *Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}
