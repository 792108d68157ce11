package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	domain "github.com/bryanwahyu/skinai/internal/domain/handoff"
)

func TestHandoffRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewHandoffRepository()
	e := &domain.Entry{
		ID:        "h1",
		Result:    &analysis.Result{AnalysisID: "a1"},
		ImageKey:  "analysis/h1/source.jpg",
		CreatedAt: t0,
		ExpiresAt: t0.Add(domain.DefaultTTL),
	}
	require.NoError(t, repo.Put(ctx, e))
	require.NoError(t, repo.Put(ctx, &domain.Entry{ID: "h2", ExpiresAt: t0.Add(time.Hour)}))

	got, err := repo.Get(ctx, "h1", t0.Add(29*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "a1", got.Result.AnalysisID)

	_, err = repo.Get(ctx, "h1", t0.Add(30*time.Minute))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	keys, err := repo.PurgeExpired(ctx, t0.Add(31*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"analysis/h1/source.jpg"}, keys)

	_, err = repo.Get(ctx, "h2", t0.Add(31*time.Minute))
	assert.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "h2"))
	_, err = repo.Get(ctx, "h2", t0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
