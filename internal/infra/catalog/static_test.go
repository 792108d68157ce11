package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRepositoryReturnsCopies(t *testing.T) {
	repo := NewStaticRepository()
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 6)
	for _, p := range list {
		assert.Equal(t, productImage, p.ImageURL)
		assert.NotEmpty(t, p.SkinTypes, p.Name)
	}

	list[0].Name = "changed"
	again, _ := repo.List(ctx)
	assert.Equal(t, "Hydrating Vitamin C Serum", again[0].Name)
}
