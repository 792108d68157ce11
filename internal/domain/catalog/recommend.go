package catalog

import (
	"sort"
	"strings"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
)

// Recommendation produk + alasan kenapa direkomendasikan
type Recommendation struct {
	Product Product  `json:"product"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Recommend urutkan produk untuk satu hasil analisa.
// +2 per skin type cocok, +1 per concern yang overlap, produk yang namanya
// mengandung bahan yang harus dihindari dibuang.
func Recommend(products []Product, r *analysis.Result, limit int) []Recommendation {
	if r == nil {
		return nil
	}
	var skinTypes, concerns, avoid []string
	if r.SkinProfile != nil {
		if r.SkinProfile.Type != "" {
			skinTypes = append(skinTypes, r.SkinProfile.Type)
		}
		if !r.Healthy() {
			concerns = append(concerns, r.SkinProfile.Concerns...)
		}
	}
	if r.ProductFilters != nil {
		skinTypes = append(skinTypes, r.ProductFilters.SkinTypeTags...)
		avoid = r.ProductFilters.AvoidIngredients
	}

	out := make([]Recommendation, 0, len(products))
	for _, p := range products {
		if containsAny(p.Name, avoid) {
			continue
		}
		rec := Recommendation{Product: p}
		seen := map[string]bool{}
		for _, st := range skinTypes {
			for _, pt := range p.SkinTypes {
				key := strings.ToLower(pt)
				if !seen[key] && skinTypeMatches(st, pt) {
					seen[key] = true
					rec.Score += 2
					rec.Reasons = append(rec.Reasons, "suited for "+pt+" skin")
				}
			}
		}
		for _, c := range p.Concerns {
			if overlaps(c, concerns) {
				rec.Score++
				rec.Reasons = append(rec.Reasons, "targets "+strings.ToLower(c))
			}
		}
		if rec.Score > 0 {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Product.Rating != out[j].Product.Rating {
			return out[i].Product.Rating > out[j].Product.Rating
		}
		return out[i].Product.ID < out[j].Product.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// skinTypeMatches "combination" cocok dengan "Combination", "oily skin" cocok dengan "Oily"
func skinTypeMatches(profileType, productType string) bool {
	a := strings.ToLower(profileType)
	b := strings.ToLower(productType)
	if b == "all" {
		return false
	}
	return a == b || hasWord(a, b)
}

func overlaps(productConcern string, concerns []string) bool {
	pc := strings.ToLower(productConcern)
	for _, c := range concerns {
		lc := strings.ToLower(c)
		for _, w := range strings.Fields(pc) {
			if len(w) > 3 && hasWord(lc, singular(w)) {
				return true
			}
		}
	}
	return false
}

func containsAny(name string, ingredients []string) bool {
	n := strings.ToLower(name)
	for _, ing := range ingredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing != "" && strings.Contains(n, ing) {
			return true
		}
	}
	return false
}

func hasWord(s, word string) bool {
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == ',' || r == '/' || r == '_'
	}) {
		if singular(w) == word || w == word {
			return true
		}
	}
	return false
}

func singular(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") {
		return strings.TrimSuffix(w, "s")
	}
	return w
}
