package catalog

import (
	"context"
	"fmt"

	domain "github.com/bryanwahyu/skinai/internal/domain/catalog"
)

const productImage = "/static/products-hero.svg"

// mock data, tidak ada backend katalog
var products = []domain.Product{
	{
		ID: 1, Name: "Hydrating Vitamin C Serum", Brand: "GlowTech", Category: "Treatment",
		Price: 45, Rating: 4.8, Reviews: 1234,
		SkinTypes: []string{"All", "Dry", "Combination"},
		Concerns:  []string{"Dullness", "Fine Lines"},
		Benefits:  "Brightens & Hydrates",
	},
	{
		ID: 2, Name: "Gentle Foam Cleanser", Brand: "PureSkin", Category: "Cleanser",
		Price: 28, Rating: 4.6, Reviews: 892,
		SkinTypes: []string{"Sensitive", "Dry"},
		Concerns:  []string{"Irritation", "Dryness"},
		Benefits:  "Soothes & Cleanses",
	},
	{
		ID: 3, Name: "Niacinamide Treatment", Brand: "ClearPath", Category: "Treatment",
		Price: 32, Rating: 4.7, Reviews: 756,
		SkinTypes: []string{"Oily", "Acne-Prone"},
		Concerns:  []string{"Acne", "Large Pores"},
		Benefits:  "Controls Oil & Minimizes Pores",
	},
	{
		ID: 4, Name: "Retinol Night Cream", Brand: "AgeReverse", Category: "Moisturizer",
		Price: 68, Rating: 4.9, Reviews: 543,
		SkinTypes: []string{"Mature", "Normal"},
		Concerns:  []string{"Aging", "Fine Lines"},
		Benefits:  "Anti-Aging & Renewal",
	},
	{
		ID: 5, Name: "SPF 50 Daily Moisturizer", Brand: "SunGuard", Category: "Sunscreen",
		Price: 38, Rating: 4.5, Reviews: 1098,
		SkinTypes: []string{"All"},
		Concerns:  []string{"Sun Protection"},
		Benefits:  "Protects & Moisturizes",
	},
	{
		ID: 6, Name: "Exfoliating Toner", Brand: "GlowTech", Category: "Toner",
		Price: 42, Rating: 4.4, Reviews: 687,
		SkinTypes: []string{"Oily", "Combination"},
		Concerns:  []string{"Dullness", "Texture"},
		Benefits:  "Exfoliates & Refines",
	},
}

// StaticRepository katalog statis
type StaticRepository struct {
	items []domain.Product
}

func NewStaticRepository() *StaticRepository {
	items := make([]domain.Product, len(products))
	copy(items, products)
	for i := range items {
		items[i].ImageURL = productImage
	}
	return &StaticRepository{items: items}
}

func (r *StaticRepository) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *StaticRepository) Get(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	for _, p := range r.items {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
}
