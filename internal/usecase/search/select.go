package search

import (
	"sort"

	"github.com/forkful/forkful/internal/domain"
)

// Select filters candidates below the minimum relevance, ranks the
// remainder, and truncates to the result cap. The request limit can
// lower the cap but never raise it. An empty result is a valid "no
// sufficiently relevant match" outcome.
func Select(candidates []domain.Candidate, policy domain.RelevancePolicy, limit int) []domain.Candidate {
	results := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.RelevanceScore >= policy.MinRelevance {
			results = append(results, c)
		}
	}

	// Deterministic order: relevance desc, then similarity desc, then
	// recipe ID asc as the final tie-break.
	sort.Slice(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].ID < results[j].ID
	})

	resultCap := policy.MaxResults
	if limit > 0 && limit < resultCap {
		resultCap = limit
	}
	if len(results) > resultCap {
		results = results[:resultCap]
	}
	return results
}

// CountAtOrAbove returns how many results meet the given threshold.
func CountAtOrAbove(results []domain.Candidate, threshold float64) int {
	n := 0
	for _, r := range results {
		if r.RelevanceScore >= threshold {
			n++
		}
	}
	return n
}
