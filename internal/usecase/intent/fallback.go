package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/forkful/forkful/internal/domain"
)

// defaultQuickTime is assumed when the query signals speed without an
// explicit duration.
const defaultQuickTime = 30

var quickWords = []string{"quick", "fast", "easy", "speedy", "in a hurry"}

// timePatterns are tried in order; first match wins. Hour units convert x60.
var timePatterns = []struct {
	re       *regexp.Regexp
	minutes  int // fixed value when > 0 (pattern has no capture group)
	multiply int
}{
	{re: regexp.MustCompile(`under\s+(\d+)\s*(?:minutes?|mins?)\b`), multiply: 1},
	{re: regexp.MustCompile(`under\s+(\d+)\s*(?:hours?|hrs?)\b`), multiply: 60},
	{re: regexp.MustCompile(`less\s+than\s+(\d+)\s*(?:minutes?|mins?)\b`), multiply: 1},
	{re: regexp.MustCompile(`half\s+an?\s+hour`), minutes: 30},
	{re: regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?)\b`), multiply: 1},
	{re: regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?)\b`), multiply: 60},
}

// servingsPatterns are tried in order; first match wins. For the bare
// "for N" form, a trailing time unit disqualifies the match ("for 30
// minutes" is a duration, not a serving count).
var servingsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*servings?\b`),
	regexp.MustCompile(`serves\s+(\d+)\b`),
	regexp.MustCompile(`for\s+(\d+)\s*(?:people|persons|guests)\b`),
	regexp.MustCompile(`for\s+(\d+)\s*([a-z]*)`),
}

var timeUnits = map[string]bool{
	"minutes": true, "minute": true, "mins": true, "min": true,
	"hours": true, "hour": true, "hrs": true, "hr": true,
}

var qualitativeServings = []struct {
	words    []string
	servings int
}{
	{words: []string{"single serving", "just for me", "for one", "for myself"}, servings: 1},
	{words: []string{"family", "crowd", "large group", "party"}, servings: 6},
}

// ExtractFallback is the deterministic intent extractor: pure keyword
// and regex matching over the lower-cased query. Never fails.
func ExtractFallback(query string) domain.SearchIntent {
	q := strings.ToLower(query)

	out := domain.NewSearchIntent()
	out.DietaryTags = matchTags(q, domain.DietarySynonyms)
	out.HealthTags = matchTags(q, domain.HealthSynonyms)
	out.HealthBenefits = matchTags(q, domain.BenefitSynonyms)
	out.TotalTime = extractTime(q)
	out.Servings = extractServings(q)
	return out
}

// matchTags adds a tag when any of its synonyms is a substring of the query.
func matchTags(q string, synonyms map[string][]string) []string {
	out := []string{}
	for _, tag := range domain.TaxonomyTags(synonyms) {
		for _, syn := range synonyms[tag] {
			if strings.Contains(q, syn) {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

func extractTime(q string) *int {
	for _, p := range timePatterns {
		m := p.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		if p.minutes > 0 {
			v := p.minutes
			return &v
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		v := n * p.multiply
		return &v
	}

	for _, w := range quickWords {
		if strings.Contains(q, w) {
			v := defaultQuickTime
			return &v
		}
	}
	return nil
}

func extractServings(q string) *int {
	for i, re := range servingsPatterns {
		m := re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		// the bare "for N" form is last; skip it when N is a duration
		if i == len(servingsPatterns)-1 && len(m) > 2 && timeUnits[m[2]] {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return &n
	}

	for _, qual := range qualitativeServings {
		for _, w := range qual.words {
			if strings.Contains(q, w) {
				v := qual.servings
				return &v
			}
		}
	}
	return nil
}
