package analysis

import (
	"fmt"
	"strings"
	"time"
)

// HealthyConcern penanda dari prompt kalau tidak ada masalah yang terlihat
const HealthyConcern = "no visible issues found"

// Urgency enum informal dari model
type Urgency string

const (
	UrgencyLow     Urgency = "low"
	UrgencyMedium  Urgency = "medium"
	UrgencyHigh    Urgency = "high"
	UrgencyUnknown Urgency = "unknown"
)

// Normalize lowercase, nilai di luar enum jadi unknown
func (u Urgency) Normalize() Urgency {
	switch v := Urgency(strings.ToLower(strings.TrimSpace(string(u)))); v {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return v
	default:
		return UrgencyUnknown
	}
}

type SkinProfile struct {
	Type     string   `json:"type"`
	Concerns []string `json:"concerns"`
	SkinTone string   `json:"skin_tone"`
	AgeRange string   `json:"age_range"`
}

type Concern struct {
	Issue          string  `json:"issue"`
	Urgency        Urgency `json:"urgency"`
	Recommendation string  `json:"recommendation"`
}

type RoutineStep struct {
	Step        int      `json:"step"`
	ProductType string   `json:"product_type"`
	Ingredients []string `json:"ingredients"`
	Purpose     string   `json:"purpose"`
}

type Routine struct {
	Morning []RoutineStep `json:"morning"`
	Evening []RoutineStep `json:"evening"`
}

type ProductFilters struct {
	AvoidIngredients     []string `json:"avoid_ingredients"`
	PreferredIngredients []string `json:"preferred_ingredients"`
	SkinTypeTags         []string `json:"skin_type_tags"`
	PriceRange           string   `json:"price_range"`
}

// ProgressTracking; ExpectedTimeline dan Tips opsional, tidak selalu dikirim model
type ProgressTracking struct {
	CheckInDays          int      `json:"check_in_days"`
	ExpectedImprovements []string `json:"expected_improvements"`
	WarningSigns         []string `json:"warning_signs"`
	ExpectedTimeline     string   `json:"expected_timeline,omitempty"`
	Tips                 []string `json:"tips,omitempty"`
}

// Result dokumen hasil analisa dari AI
type Result struct {
	AnalysisID        string            `json:"analysis_id"`
	Timestamp         string            `json:"timestamp"`
	SkinProfile       *SkinProfile      `json:"skin_profile"`
	ImmediateConcerns []Concern         `json:"immediate_concerns"`
	SkincareRoutine   *Routine          `json:"skincare_routine"`
	ProductFilters    *ProductFilters   `json:"product_filters,omitempty"`
	ProgressTracking  *ProgressTracking `json:"progress_tracking,omitempty"`
}

// Backfill isi analysis_id dan timestamp kalau model tidak mengirim
func (r *Result) Backfill(now time.Time) {
	if strings.TrimSpace(r.Timestamp) == "" {
		r.Timestamp = now.UTC().Format(time.RFC3339)
	}
	if strings.TrimSpace(r.AnalysisID) == "" {
		r.AnalysisID = fmt.Sprintf("skin_analysis_%d", now.UnixMilli())
	}
	for i := range r.ImmediateConcerns {
		r.ImmediateConcerns[i].Urgency = r.ImmediateConcerns[i].Urgency.Normalize()
	}
}

// Validate cek field wajib
func (r *Result) Validate() error {
	var missing []string
	if strings.TrimSpace(r.AnalysisID) == "" {
		missing = append(missing, "analysis_id")
	}
	if r.SkinProfile == nil {
		missing = append(missing, "skin_profile")
	} else if strings.TrimSpace(r.SkinProfile.Type) == "" {
		missing = append(missing, "skin_profile.type")
	}
	if r.SkincareRoutine == nil {
		missing = append(missing, "skincare_routine")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteResponse, strings.Join(missing, ", "))
	}
	return nil
}

// Healthy true kalau model menandai tidak ada masalah kulit
func (r *Result) Healthy() bool {
	if r.SkinProfile == nil {
		return false
	}
	c := r.SkinProfile.Concerns
	if len(c) == 0 {
		return len(r.ImmediateConcerns) == 0
	}
	return len(c) == 1 && strings.EqualFold(strings.TrimSpace(c[0]), HealthyConcern)
}
