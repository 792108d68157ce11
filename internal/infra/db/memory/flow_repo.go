package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/bryanwahyu/skinai/internal/domain/capture"
)

// FlowRepository menyimpan capture flow di memory. Flow memang transient.
type FlowRepository struct {
	mu    sync.Mutex
	flows map[domain.FlowID]*domain.Flow
}

func NewFlowRepository() *FlowRepository {
	return &FlowRepository{flows: make(map[domain.FlowID]*domain.Flow)}
}

func clone(f *domain.Flow) *domain.Flow {
	cp := *f
	return &cp
}

func (r *FlowRepository) Create(_ context.Context, f *domain.Flow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flows[f.ID]; ok {
		return fmt.Errorf("flow %s already exists", f.ID)
	}
	r.flows[f.ID] = clone(f)
	return nil
}

func (r *FlowRepository) Get(_ context.Context, id domain.FlowID) (*domain.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[id]
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	return clone(f), nil
}

// Update jalankan fn pada salinan; kalau fn error, flow yang tersimpan tidak berubah
func (r *FlowRepository) Update(_ context.Context, id domain.FlowID, fn func(f *domain.Flow) error) (*domain.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[id]
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	work := clone(f)
	if err := fn(work); err != nil {
		return nil, err
	}
	r.flows[id] = work
	return clone(work), nil
}

func (r *FlowRepository) Delete(_ context.Context, id domain.FlowID) error {
	r.mu.Lock()
	delete(r.flows, id)
	r.mu.Unlock()
	return nil
}

// PurgeIdleSince hapus flow yang tidak disentuh sejak cutoff
func (r *FlowRepository) PurgeIdleSince(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, f := range r.flows {
		if f.UpdatedAt.Before(cutoff) {
			delete(r.flows, id)
			n++
		}
	}
	return n, nil
}
