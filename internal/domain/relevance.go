package domain

// RelevancePolicy holds the process-wide ranking constants. Constructed
// once at startup from configuration and injected read-only.
type RelevancePolicy struct {
	// MinSimilarity is the cosine similarity floor for vector search hits.
	MinSimilarity float64
	// MinRelevance is the relevance floor for inclusion in final results.
	MinRelevance float64
	// HighRelevance and PerfectMatch are display thresholds reported to
	// the caller alongside results.
	HighRelevance float64
	PerfectMatch  float64
	// TextFallbackSimilarity is assigned to candidates from text search,
	// where no vector score exists.
	TextFallbackSimilarity float64
	// MaxResults caps the final result set.
	MaxResults int
	// OverFetch caps the candidate set fetched before re-ranking. Larger
	// than MaxResults because the scorer may re-rank similarity winners
	// below text-search losers.
	OverFetch int
}

// DefaultRelevancePolicy returns the tuned production constants.
func DefaultRelevancePolicy() RelevancePolicy {
	return RelevancePolicy{
		MinSimilarity:          0.5,
		MinRelevance:           0.6,
		HighRelevance:          0.8,
		PerfectMatch:           0.9,
		TextFallbackSimilarity: 0.6,
		MaxResults:             3,
		OverFetch:              20,
	}
}
