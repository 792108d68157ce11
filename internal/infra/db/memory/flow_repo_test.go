package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/skinai/internal/domain/capture"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFlowRepositoryUpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewFlowRepository()
	require.NoError(t, repo.Create(ctx, domain.NewFlow("f1", t0)))
	assert.Error(t, repo.Create(ctx, domain.NewFlow("f1", t0)))

	// fn error: state lama tetap
	boom := errors.New("boom")
	_, err := repo.Update(ctx, "f1", func(f *domain.Flow) error {
		f.State = domain.StateDone
		return boom
	})
	assert.ErrorIs(t, err, boom)
	got, err := repo.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, got.State)

	updated, err := repo.Update(ctx, "f1", func(f *domain.Flow) error {
		return f.SelectMethod(domain.MethodUpload, t0)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateUploadSelected, updated.State)

	// salinan yang dikembalikan tidak berbagi pointer dengan store
	updated.State = domain.StateDone
	got, _ = repo.Get(ctx, "f1")
	assert.Equal(t, domain.StateUploadSelected, got.State)

	_, err = repo.Update(ctx, "missing", func(*domain.Flow) error { return nil })
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}

func TestFlowRepositoryConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewFlowRepository()
	require.NoError(t, repo.Create(ctx, domain.NewFlow("f1", t0)))

	// hanya satu goroutine yang boleh berhasil pindah dari idle
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Update(ctx, "f1", func(f *domain.Flow) error {
				return f.SelectMethod(domain.MethodCamera, t0)
			}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestFlowRepositoryPurgeIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewFlowRepository()
	require.NoError(t, repo.Create(ctx, domain.NewFlow("old", t0)))
	require.NoError(t, repo.Create(ctx, domain.NewFlow("new", t0.Add(time.Hour))))

	n, err := repo.PurgeIdleSince(ctx, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
	_, err = repo.Get(ctx, "new")
	assert.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "new"))
	_, err = repo.Get(ctx, "new")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}
