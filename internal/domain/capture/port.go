package capture

import (
	"context"
	"time"
)

// Repository port untuk menyimpan flow selama sesi berjalan
type Repository interface {
	Create(ctx context.Context, f *Flow) error
	Get(ctx context.Context, id FlowID) (*Flow, error)
	// Update menjalankan fn dengan lock per flow, lalu menyimpan hasilnya
	Update(ctx context.Context, id FlowID, fn func(f *Flow) error) (*Flow, error)
	Delete(ctx context.Context, id FlowID) error
	PurgeIdleSince(ctx context.Context, cutoff time.Time) (int, error)
}
