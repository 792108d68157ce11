package handoff

import (
	"context"
	"time"
)

// Repository port untuk session handoff antar halaman
type Repository interface {
	Put(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id EntryID, now time.Time) (*Entry, error)
	Delete(ctx context.Context, id EntryID) error
	// PurgeExpired hapus entry yang expired, kembalikan image key yang ikut dihapus
	PurgeExpired(ctx context.Context, now time.Time) ([]string, error)
}

// ImageStore port untuk foto sumber
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
