package catalog

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	domain "github.com/bryanwahyu/skinai/internal/domain/catalog"
)

// DefaultRecommendations jumlah kartu di halaman results
const DefaultRecommendations = 4

type Service struct {
	Repo domain.Repository
}

// Search filter katalog by nama/brand dan skin type
func (s *Service) Search(ctx context.Context, query, skinType string) ([]domain.Product, error) {
	if !domain.IsValidSkinType(skinType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, skinType)
	}
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(query, skinType) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Recommend produk untuk satu hasil analisa
func (s *Service) Recommend(ctx context.Context, r *analysis.Result, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Recommend(all, r, limit), nil
}

// Get satu produk
func (s *Service) Get(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	return s.Repo.Get(ctx, id)
}
