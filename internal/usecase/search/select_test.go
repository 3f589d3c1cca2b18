package search

import (
	"testing"

	"github.com/forkful/forkful/internal/domain"
)

func scored(id string, relevance, similarity float64) domain.Candidate {
	return domain.Candidate{
		Recipe:          domain.Recipe{ID: id},
		SimilarityScore: similarity,
		RelevanceScore:  relevance,
	}
}

func testPolicy() domain.RelevancePolicy {
	return domain.DefaultRelevancePolicy()
}

func TestSelect_FiltersBelowThreshold(t *testing.T) {
	candidates := []domain.Candidate{
		scored("a", 0.9, 0.9),
		scored("b", 0.59, 0.9),
		scored("c", 0.6, 0.9),
	}

	results := Select(candidates, testPolicy(), 0)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.RelevanceScore < 0.6 {
			t.Errorf("result %s below threshold: %g", r.ID, r.RelevanceScore)
		}
	}
}

func TestSelect_NeverExceedsMaxResults(t *testing.T) {
	var candidates []domain.Candidate
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		candidates = append(candidates, scored(id, 0.9, 0.9))
	}

	results := Select(candidates, testPolicy(), 0)
	if len(results) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(results))
	}
}

func TestSelect_OrderedByRelevance(t *testing.T) {
	candidates := []domain.Candidate{
		scored("low", 0.7, 0.5),
		scored("high", 0.95, 0.5),
		scored("mid", 0.8, 0.5),
	}

	results := Select(candidates, testPolicy(), 0)

	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, results[i].ID)
		}
	}
}

func TestSelect_DeterministicTieBreak(t *testing.T) {
	// Equal relevance: higher similarity first, then recipe ID.
	candidates := []domain.Candidate{
		scored("z", 0.8, 0.6),
		scored("a", 0.8, 0.6),
		scored("m", 0.8, 0.9),
	}

	results := Select(candidates, testPolicy(), 0)

	want := []string{"m", "a", "z"}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, results[i].ID)
		}
	}
}

func TestSelect_LimitLowersButNeverRaisesCap(t *testing.T) {
	candidates := []domain.Candidate{
		scored("a", 0.9, 0.9),
		scored("b", 0.85, 0.9),
		scored("c", 0.8, 0.9),
	}

	if got := Select(candidates, testPolicy(), 1); len(got) != 1 {
		t.Errorf("limit=1 should yield 1 result, got %d", len(got))
	}
	if got := Select(candidates, testPolicy(), 10); len(got) != 3 {
		t.Errorf("limit=10 must not raise the cap, got %d", len(got))
	}
	if got := Select(candidates, testPolicy(), 0); len(got) != 3 {
		t.Errorf("limit=0 should use the cap, got %d", len(got))
	}
}

func TestSelect_EmptyIsValid(t *testing.T) {
	results := Select([]domain.Candidate{scored("a", 0.1, 0.2)}, testPolicy(), 0)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestCountAtOrAbove(t *testing.T) {
	results := []domain.Candidate{
		scored("a", 0.95, 0.9),
		scored("b", 0.85, 0.9),
		scored("c", 0.7, 0.9),
	}

	if got := CountAtOrAbove(results, 0.8); got != 2 {
		t.Errorf("expected 2 at or above 0.8, got %d", got)
	}
	if got := CountAtOrAbove(results, 0.9); got != 1 {
		t.Errorf("expected 1 at or above 0.9, got %d", got)
	}
}
