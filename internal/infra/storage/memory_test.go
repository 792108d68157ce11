package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/skinai/internal/domain/handoff"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte{1, 2, 3}
	require.NoError(t, s.Put(ctx, "k", data, "image/jpeg"))
	data[0] = 9 // store menyimpan salinan

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, handoff.ErrNotFound)
	assert.Zero(t, s.Len())
}
