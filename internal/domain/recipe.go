package domain

import "time"

// Recipe is a published recipe as stored in Postgres. This service only
// reads recipes; creation and updates happen in the creator pipeline.
type Recipe struct {
	ID               string
	CreatorID        string
	Title            string
	Description      string
	PrepTimeMinutes  int
	CookTimeMinutes  int
	Servings         int
	Ingredients      []string
	Instructions     []string
	DietaryTags      []string
	HealthTags       []string
	HealthBenefits   []string
	NutritionSummary string
	CreatedAt        time.Time
}

// TotalTimeMinutes returns combined prep and cook time.
func (r Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// Candidate is a recipe flowing through the search pipeline together
// with its scores. Candidates live for one request and are never persisted.
type Candidate struct {
	Recipe

	// SimilarityScore is the cosine similarity from vector search in [0,1],
	// or the fixed text-search fallback value when no vector score exists.
	SimilarityScore float64

	// RelevanceScore is the final blended ranking score in [0,1],
	// assigned by the relevance scorer.
	RelevanceScore float64
}
