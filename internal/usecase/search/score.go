package search

import (
	"strings"

	"github.com/forkful/forkful/internal/domain"
)

// Relevance blends vector similarity with structured intent overlap.
// Similarity alone is noisy for short queries; tag overlap grounds the
// ranking in explicit recipe metadata, and the keyword bonus rewards
// exact lexical matches that embeddings under-weight.
const (
	weightSimilarity = 0.40
	weightIntent     = 0.60

	weightDietary  = 0.20
	weightHealth   = 0.20
	weightBenefit  = 0.15
	weightTime     = 0.03
	weightServings = 0.02

	titleTokenBonus = 0.05
	descTokenBonus  = 0.02
	keywordBonusCap = 0.10

	// servingsWindow is the tolerated serving-count distance before the
	// fit score reaches zero.
	servingsWindow = 4.0

	minTokenLen = 2
)

// Score computes the relevance of a candidate for the given intent and
// query. Pure and deterministic; result is always in [0,1].
func Score(c domain.Candidate, in domain.SearchIntent, query string) float64 {
	score := c.SimilarityScore * weightSimilarity

	// Intent dimensions absent from the query are excluded from both
	// numerator and denominator so they neither help nor hurt.
	var weighted, present float64

	if len(in.DietaryTags) > 0 {
		weighted += overlapRatio(in.DietaryTags, c.DietaryTags) * weightDietary
		present += weightDietary
	}
	if len(in.HealthTags) > 0 {
		weighted += overlapRatio(in.HealthTags, c.HealthTags) * weightHealth
		present += weightHealth
	}
	if len(in.HealthBenefits) > 0 {
		weighted += overlapRatio(in.HealthBenefits, c.HealthBenefits) * weightBenefit
		present += weightBenefit
	}
	if in.TotalTime != nil {
		weighted += timeFit(*in.TotalTime, c.TotalTimeMinutes()) * weightTime
		present += weightTime
	}
	if in.Servings != nil {
		weighted += servingsFit(*in.Servings, c.Servings) * weightServings
		present += weightServings
	}

	if present > 0 {
		score += weighted / present * weightIntent
	} else {
		// No intent dimensions to match: normalize by the achievable
		// maximum so similarity carries the full weight instead of
		// capping every candidate at 0.40.
		score = c.SimilarityScore
	}

	score += keywordBonus(query, c.Title, c.Description)

	return clamp01(score)
}

// overlapRatio is the fraction of wanted tags present on the candidate,
// case-insensitive.
func overlapRatio(want, have []string) float64 {
	if len(want) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(h)] = struct{}{}
	}
	matched := 0
	for _, w := range want {
		if _, ok := set[strings.ToLower(w)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want))
}

// timeFit is 1.0 when the recipe fits the target time, decaying
// linearly with overshoot relative to the target, floored at 0.
func timeFit(target, total int) float64 {
	if target <= 0 {
		return 0
	}
	if total <= target {
		return 1
	}
	overshoot := float64(total-target) / float64(target)
	if overshoot >= 1 {
		return 0
	}
	return 1 - overshoot
}

// servingsFit decays linearly over an allowed +-4 serving window.
func servingsFit(target, have int) float64 {
	diff := float64(target - have)
	if diff < 0 {
		diff = -diff
	}
	if diff >= servingsWindow {
		return 0
	}
	return 1 - diff/servingsWindow
}

// keywordBonus rewards query tokens found in the title (+0.05 each) or
// description (+0.02 each); the total bonus is capped.
func keywordBonus(query, title, description string) float64 {
	title = strings.ToLower(title)
	description = strings.ToLower(description)

	var bonus float64
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.Trim(tok, ".,!?\"'()")
		if len(tok) <= minTokenLen {
			continue
		}
		if strings.Contains(title, tok) {
			bonus += titleTokenBonus
		}
		if strings.Contains(description, tok) {
			bonus += descTokenBonus
		}
	}

	if bonus > keywordBonusCap {
		return keywordBonusCap
	}
	return bonus
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
