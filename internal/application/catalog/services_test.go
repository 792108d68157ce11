package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	domain "github.com/bryanwahyu/skinai/internal/domain/catalog"
	infracatalog "github.com/bryanwahyu/skinai/internal/infra/catalog"
)

func newService() *Service {
	return &Service{Repo: infracatalog.NewStaticRepository()}
}

func TestSearch(t *testing.T) {
	s := newService()
	ctx := context.Background()

	all, err := s.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	oily, err := s.Search(ctx, "", "oily")
	require.NoError(t, err)
	require.Len(t, oily, 2)
	assert.Equal(t, "Niacinamide Treatment", oily[0].Name)

	_, err = s.Search(ctx, "", "Scaly")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestRecommendDefaultLimit(t *testing.T) {
	s := newService()
	r := &analysis.Result{
		SkinProfile:    &analysis.SkinProfile{Type: "Combination", Concerns: []string{"dullness", "fine lines", "large pores"}},
		ProductFilters: &analysis.ProductFilters{SkinTypeTags: []string{"Oily"}},
	}
	recs, err := s.Recommend(context.Background(), r, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), DefaultRecommendations)
	require.NotEmpty(t, recs)
	// toner: Combination + Oily + Dullness
	assert.Equal(t, domain.ProductID(6), recs[0].Product.ID)
}

func TestGet(t *testing.T) {
	s := newService()
	p, err := s.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "SunGuard", p.Brand)

	_, err = s.Get(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
