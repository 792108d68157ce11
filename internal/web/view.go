package web

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	"github.com/bryanwahyu/skinai/internal/domain/catalog"
	"github.com/bryanwahyu/skinai/internal/domain/handoff"
)

type ConcernView struct {
	Issue          string
	Urgency        string
	Badge          string
	Recommendation string
}

type StepView struct {
	Step        int
	ProductType string
	Ingredients string
	Purpose     string
}

type FiltersView struct {
	Avoid      string
	Preferred  string
	SkinTypes  string
	PriceRange string
}

type ProgressView struct {
	CheckInDays  int
	Improvements []string
	WarningSigns []string
	Timeline     string
	Tips         []string
}

type ProductView struct {
	ID       int
	Name     string
	Brand    string
	Category string
	Price    float64
	Rating   float64
	Reviews  int
	ImageURL string
	Benefits string
	Reasons  []string
}

// ResultsView data untuk template results
type ResultsView struct {
	HandoffID       string
	AnalysisID      string
	AnalyzedAt      string
	ExpiresAt       string
	ImageURL        string
	SkinType        string
	SkinInitial     string
	SkinTone        string
	AgeRange        string
	Concerns        []string
	Healthy         bool
	Immediate       []ConcernView
	Morning         []StepView
	Evening         []StepView
	Filters         *FiltersView
	Progress        *ProgressView
	Recommendations []ProductView
}

// BuildResultsView susun view dari entry handoff. Field opsional yang kosong
// dibiarkan nil supaya template cukup cek {{with}}.
func BuildResultsView(e *handoff.Entry, recs []catalog.Recommendation) ResultsView {
	v := ResultsView{}
	if e == nil || e.Result == nil {
		return v
	}
	r := e.Result
	v.HandoffID = string(e.ID)
	v.AnalysisID = r.AnalysisID
	v.AnalyzedAt = formatTimestamp(r.Timestamp)
	if !e.ExpiresAt.IsZero() {
		v.ExpiresAt = e.ExpiresAt.UTC().Format("15:04 MST")
	}
	if e.ImageKey != "" {
		v.ImageURL = "/v1/results/" + string(e.ID) + "/image"
	}

	if sp := r.SkinProfile; sp != nil {
		v.SkinType = sp.Type
		if first, _ := utf8.DecodeRuneInString(sp.Type); first != utf8.RuneError {
			v.SkinInitial = strings.ToUpper(string(first))
		}
		v.SkinTone = sp.SkinTone
		v.AgeRange = sp.AgeRange
		v.Concerns = sp.Concerns
	}
	v.Healthy = r.Healthy()

	for _, c := range r.ImmediateConcerns {
		u := c.Urgency.Normalize()
		v.Immediate = append(v.Immediate, ConcernView{
			Issue:          c.Issue,
			Urgency:        string(u),
			Badge:          "badge-" + string(u),
			Recommendation: c.Recommendation,
		})
	}

	if rt := r.SkincareRoutine; rt != nil {
		v.Morning = steps(rt.Morning)
		v.Evening = steps(rt.Evening)
	}

	if f := r.ProductFilters; f != nil {
		fv := &FiltersView{
			Avoid:      strings.Join(f.AvoidIngredients, ", "),
			Preferred:  strings.Join(f.PreferredIngredients, ", "),
			SkinTypes:  strings.Join(f.SkinTypeTags, ", "),
			PriceRange: f.PriceRange,
		}
		if *fv != (FiltersView{}) {
			v.Filters = fv
		}
	}

	if p := r.ProgressTracking; p != nil {
		v.Progress = &ProgressView{
			CheckInDays:  p.CheckInDays,
			Improvements: p.ExpectedImprovements,
			WarningSigns: p.WarningSigns,
			Timeline:     p.ExpectedTimeline,
			Tips:         p.Tips,
		}
	}

	for _, rec := range recs {
		pv := productView(rec.Product)
		pv.Reasons = rec.Reasons
		v.Recommendations = append(v.Recommendations, pv)
	}
	return v
}

// ProductsView data halaman products
type ProductsView struct {
	Query    string
	SkinType string
	Filters  []string
	Products []ProductView
}

func BuildProductsView(query, skinType string, products []catalog.Product) ProductsView {
	v := ProductsView{Query: query, SkinType: skinType, Filters: catalog.SkinTypeFilters}
	if v.SkinType == "" {
		v.SkinType = catalog.SkinTypeAll
	}
	for _, p := range products {
		v.Products = append(v.Products, productView(p))
	}
	return v
}

func productView(p catalog.Product) ProductView {
	return ProductView{
		ID:       int(p.ID),
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Price:    p.Price,
		Rating:   p.Rating,
		Reviews:  p.Reviews,
		ImageURL: p.ImageURL,
		Benefits: p.Benefits,
	}
}

// steps urut berdasarkan nomor step, model kadang mengirim acak
func steps(in []analysis.RoutineStep) []StepView {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]analysis.RoutineStep, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Step < sorted[j].Step })

	out := make([]StepView, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, StepView{
			Step:        s.Step,
			ProductType: s.ProductType,
			Ingredients: strings.Join(s.Ingredients, ", "),
			Purpose:     s.Purpose,
		})
	}
	return out
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2 Jan 2006, 15:04 MST")
}
