package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
)

var fixtures = []Product{
	{ID: 1, Name: "Hydrating Vitamin C Serum", Brand: "GlowTech", Rating: 4.8,
		SkinTypes: []string{"All", "Dry", "Combination"}, Concerns: []string{"Dullness", "Fine Lines"}},
	{ID: 2, Name: "Gentle Foam Cleanser", Brand: "PureSkin", Rating: 4.6,
		SkinTypes: []string{"Sensitive", "Dry"}, Concerns: []string{"Irritation", "Dryness"}},
	{ID: 3, Name: "Niacinamide Treatment", Brand: "ClearPath", Rating: 4.7,
		SkinTypes: []string{"Oily", "Acne-Prone"}, Concerns: []string{"Acne", "Large Pores"}},
	{ID: 4, Name: "Retinol Night Cream", Brand: "AgeReverse", Rating: 4.9,
		SkinTypes: []string{"Mature", "Normal"}, Concerns: []string{"Aging", "Fine Lines"}},
	{ID: 5, Name: "SPF 50 Daily Moisturizer", Brand: "SunGuard", Rating: 4.5,
		SkinTypes: []string{"All"}, Concerns: []string{"Sun Protection"}},
	{ID: 6, Name: "Exfoliating Toner", Brand: "GlowTech", Rating: 4.4,
		SkinTypes: []string{"Oily", "Combination"}, Concerns: []string{"Dullness", "Texture"}},
}

func ids(recs []Recommendation) []ProductID {
	out := make([]ProductID, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Product.ID)
	}
	return out
}

func TestMatches(t *testing.T) {
	tests := []struct {
		query, skinType string
		want            []ProductID
	}{
		{"", "", []ProductID{1, 2, 3, 4, 5, 6}},
		{"", "All", []ProductID{1, 2, 3, 4, 5, 6}},
		{"glowtech", "", []ProductID{1, 6}},
		{"  SERUM ", "", []ProductID{1}},
		{"", "Oily", []ProductID{3, 6}},
		// produk bertag All tidak otomatis cocok dengan filter lain
		{"", "Sensitive", []ProductID{2}},
		{"glow", "Oily", []ProductID{6}},
		{"nothing", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.skinType, func(t *testing.T) {
			var got []ProductID
			for _, p := range fixtures {
				if p.Matches(tt.query, tt.skinType) {
					got = append(got, p.ID)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidSkinType(t *testing.T) {
	assert.True(t, IsValidSkinType(""))
	assert.True(t, IsValidSkinType("Mature"))
	assert.False(t, IsValidSkinType("Scaly"))
}

func TestRecommendScoresAndAvoids(t *testing.T) {
	r := &analysis.Result{
		SkinProfile:    &analysis.SkinProfile{Type: "Oily", Concerns: []string{"acne", "large pores"}},
		ProductFilters: &analysis.ProductFilters{AvoidIngredients: []string{"Retinol"}},
	}
	recs := Recommend(fixtures, r, 0)
	require.Equal(t, []ProductID{3, 6}, ids(recs))
	assert.Equal(t, 4, recs[0].Score)
	assert.Contains(t, recs[0].Reasons, "suited for Oily skin")
	assert.Contains(t, recs[0].Reasons, "targets acne")
	assert.Equal(t, 2, recs[1].Score)
}

func TestRecommendSkinTypeTagsAndTieBreak(t *testing.T) {
	r := &analysis.Result{
		SkinProfile:    &analysis.SkinProfile{Type: "Dry"},
		ProductFilters: &analysis.ProductFilters{SkinTypeTags: []string{"sensitive"}},
	}
	recs := Recommend(fixtures, r, 0)
	assert.Equal(t, []ProductID{2, 1}, ids(recs))

	// skor sama: rating lebih tinggi duluan
	combo := Recommend(fixtures, &analysis.Result{SkinProfile: &analysis.SkinProfile{Type: "combination skin"}}, 0)
	assert.Equal(t, []ProductID{1, 6}, ids(combo))
}

func TestRecommendLimitAndHealthy(t *testing.T) {
	r := &analysis.Result{SkinProfile: &analysis.SkinProfile{Type: "Oily", Concerns: []string{"No visible issues found"}}}
	recs := Recommend(fixtures, r, 1)
	require.Len(t, recs, 1)
	// healthy: concern marker tidak dihitung, hanya skin type
	assert.Equal(t, 2, recs[0].Score)

	assert.Nil(t, Recommend(fixtures, nil, 4))
}
