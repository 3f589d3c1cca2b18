package domain

import (
	"strconv"
	"strings"
)

// SearchIntent is the structured interpretation of a free-text query.
// Tag slices are always non-nil so matching logic never null-checks.
type SearchIntent struct {
	DietaryTags    []string `json:"dietary_tags"`
	HealthTags     []string `json:"health_tags"`
	HealthBenefits []string `json:"health_benefits"`
	TotalTime      *int     `json:"total_time,omitempty"`
	Servings       *int     `json:"servings,omitempty"`
}

// NewSearchIntent returns a fully-defaulted intent with empty tag sets.
func NewSearchIntent() SearchIntent {
	return SearchIntent{
		DietaryTags:    []string{},
		HealthTags:     []string{},
		HealthBenefits: []string{},
	}
}

// SanitizeIntent coerces a raw parsed JSON object into a valid SearchIntent.
// Missing or mistyped tag fields become empty sets; missing or non-numeric
// time/servings become absent. Model output is never trusted as-is.
func SanitizeIntent(raw map[string]any) SearchIntent {
	out := NewSearchIntent()
	if raw == nil {
		return out
	}
	out.DietaryTags = coerceTagSet(raw["dietary_tags"])
	out.HealthTags = coerceTagSet(raw["health_tags"])
	out.HealthBenefits = coerceTagSet(raw["health_benefits"])
	out.TotalTime = coercePositiveInt(raw["total_time"])
	out.Servings = coercePositiveInt(raw["servings"])
	return out
}

// coerceTagSet turns an arbitrary JSON value into a deduplicated,
// lower-cased string set. Non-arrays and non-string elements are dropped.
func coerceTagSet(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	seen := make(map[string]struct{}, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// coercePositiveInt accepts JSON numbers and numeric strings; anything
// else (including zero and negatives) becomes absent.
func coercePositiveInt(v any) *int {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			i := int(n)
			return &i
		}
	case int:
		if n > 0 {
			return &n
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && i > 0 {
			return &i
		}
	}
	return nil
}
