package memory

import (
	"context"
	"sync"
	"time"

	domain "github.com/bryanwahyu/skinai/internal/domain/handoff"
)

// HandoffRepository session handoff in-process
type HandoffRepository struct {
	mu      sync.RWMutex
	entries map[domain.EntryID]domain.Entry
}

func NewHandoffRepository() *HandoffRepository {
	return &HandoffRepository{entries: make(map[domain.EntryID]domain.Entry)}
}

func (r *HandoffRepository) Put(_ context.Context, e *domain.Entry) error {
	r.mu.Lock()
	r.entries[e.ID] = *e
	r.mu.Unlock()
	return nil
}

func (r *HandoffRepository) Get(_ context.Context, id domain.EntryID, now time.Time) (*domain.Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok || e.Expired(now) {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *HandoffRepository) Delete(_ context.Context, id domain.EntryID) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return nil
}

func (r *HandoffRepository) PurgeExpired(_ context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []string
	for id, e := range r.entries {
		if e.Expired(now) {
			keys = append(keys, e.ImageKey)
			delete(r.entries, id)
		}
	}
	return keys, nil
}
