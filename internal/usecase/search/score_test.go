package search

import (
	"testing"

	"github.com/forkful/forkful/internal/domain"
)

func intPtr(v int) *int { return &v }

func ketoCandidate(similarity float64) domain.Candidate {
	return domain.Candidate{
		Recipe: domain.Recipe{
			ID:              "r1",
			Title:           "Keto Chicken Dinner",
			Description:     "A quick low-carb chicken dinner for weeknights",
			PrepTimeMinutes: 10,
			CookTimeMinutes: 15,
			Servings:        4,
			DietaryTags:     []string{"keto", "low-carb"},
			HealthTags:      []string{"high-protein"},
			HealthBenefits:  []string{"weight-loss"},
		},
		SimilarityScore: similarity,
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	intents := []domain.SearchIntent{
		domain.NewSearchIntent(),
		{DietaryTags: []string{"vegan"}, HealthTags: []string{}, HealthBenefits: []string{}},
		{
			DietaryTags:    []string{"keto", "low-carb"},
			HealthTags:     []string{"high-protein"},
			HealthBenefits: []string{"weight-loss"},
			TotalTime:      intPtr(30),
			Servings:       intPtr(4),
		},
	}
	similarities := []float64{0, 0.3, 0.6, 0.9, 1.0}

	for _, in := range intents {
		for _, sim := range similarities {
			got := Score(ketoCandidate(sim), in, "quick keto chicken dinner")
			if got < 0 || got > 1 {
				t.Errorf("score out of range: %g (sim=%g intent=%+v)", got, sim, in)
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	c := ketoCandidate(0.7)
	in := domain.SearchIntent{
		DietaryTags:    []string{"keto"},
		HealthTags:     []string{},
		HealthBenefits: []string{},
		TotalTime:      intPtr(30),
	}

	first := Score(c, in, "quick keto dinner")
	for i := 0; i < 5; i++ {
		if got := Score(c, in, "quick keto dinner"); got != first {
			t.Fatalf("scorer is not deterministic: %g != %g", got, first)
		}
	}
}

func TestScore_FullMatchExceedsHighRelevance(t *testing.T) {
	// Strong similarity, all requested tags matched, two query words in
	// the title: must clear the 0.8 display threshold.
	c := ketoCandidate(0.9)
	in := domain.SearchIntent{
		DietaryTags:    []string{"keto", "low-carb"},
		HealthTags:     []string{"high-protein"},
		HealthBenefits: []string{},
	}

	got := Score(c, in, "keto chicken dinner")
	if got <= 0.8 {
		t.Errorf("expected score > 0.8 for a full match, got %g", got)
	}
}

func TestScore_AbsentDimensionsExcluded(t *testing.T) {
	// A candidate with no tag overlap on the single requested dimension
	// scores lower than one where that dimension was never requested.
	c := ketoCandidate(0.7)
	c.DietaryTags = []string{"vegan"}

	mismatch := Score(c, domain.SearchIntent{
		DietaryTags:    []string{"keto"},
		HealthTags:     []string{},
		HealthBenefits: []string{},
	}, "dinner")
	noIntent := Score(c, domain.NewSearchIntent(), "dinner")

	if mismatch >= noIntent {
		t.Errorf("tag mismatch (%g) should score below absent intent (%g)", mismatch, noIntent)
	}
}

func TestScore_NoIntentUsesSimilarityOnly(t *testing.T) {
	c := ketoCandidate(0.85)
	got := Score(c, domain.NewSearchIntent(), "zzz")

	// With no intent dimensions the similarity carries full weight.
	if got != 0.85 {
		t.Errorf("expected bare similarity 0.85, got %g", got)
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		want []string
		have []string
		exp  float64
	}{
		{"full", []string{"keto", "low-carb"}, []string{"low-carb", "keto"}, 1.0},
		{"half", []string{"keto", "vegan"}, []string{"keto"}, 0.5},
		{"none", []string{"vegan"}, []string{"keto"}, 0},
		{"case-insensitive", []string{"Keto"}, []string{"KETO"}, 1.0},
		{"empty want", []string{}, []string{"keto"}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlapRatio(tc.want, tc.have); got != tc.exp {
				t.Errorf("overlapRatio(%v, %v) = %g, want %g", tc.want, tc.have, got, tc.exp)
			}
		})
	}
}

func TestTimeFit(t *testing.T) {
	tests := []struct {
		name   string
		target int
		total  int
		exp    float64
	}{
		{"under target", 30, 25, 1},
		{"exact", 30, 30, 1},
		{"half over", 30, 45, 0.5},
		{"double", 30, 60, 0},
		{"way over", 30, 300, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := timeFit(tc.target, tc.total); got != tc.exp {
				t.Errorf("timeFit(%d, %d) = %g, want %g", tc.target, tc.total, got, tc.exp)
			}
		})
	}
}

func TestServingsFit(t *testing.T) {
	tests := []struct {
		name   string
		target int
		have   int
		exp    float64
	}{
		{"exact", 4, 4, 1},
		{"off by one", 4, 5, 0.75},
		{"off by two either way", 4, 2, 0.5},
		{"window edge", 4, 8, 0},
		{"outside window", 2, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := servingsFit(tc.target, tc.have); got != tc.exp {
				t.Errorf("servingsFit(%d, %d) = %g, want %g", tc.target, tc.have, got, tc.exp)
			}
		})
	}
}

func TestKeywordBonus(t *testing.T) {
	title := "Keto Chicken Dinner"
	desc := "A quick low-carb chicken dinner"

	tests := []struct {
		name  string
		query string
		exp   float64
	}{
		{"no hits", "zzz yyy", 0},
		{"one title hit", "chicken soup", 0.05 + 0.02}, // also in description
		{"short tokens ignored", "a an to", 0},
		{"cap reached", "keto chicken dinner quick low-carb", keywordBonusCap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keywordBonus(tc.query, title, desc)
			if diff := got - tc.exp; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("keywordBonus(%q) = %g, want %g", tc.query, got, tc.exp)
			}
		})
	}
}
