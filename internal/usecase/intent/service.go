// Package intent turns free-text recipe queries into structured search
// intent. The model path is best-effort; the keyword fallback guarantees
// a usable intent for every query.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
	"github.com/forkful/forkful/internal/metrics"
)

// Extractor extracts search intent, preferring the language model and
// falling back to keyword matching on any failure.
type Extractor struct {
	gen    Generator
	logger *zap.Logger
}

// New creates an intent extractor. gen may be nil; extraction then
// always uses the fallback.
func New(gen Generator, logger *zap.Logger) *Extractor {
	return &Extractor{gen: gen, logger: logger}
}

// Extract never fails: model errors, malformed output, and missing
// credentials all degrade to the keyword fallback.
func (e *Extractor) Extract(ctx context.Context, query string) (domain.SearchIntent, Source) {
	in, src := e.extract(ctx, query)
	metrics.IntentExtractionsTotal.WithLabelValues(string(src)).Inc()
	return in, src
}

func (e *Extractor) extract(ctx context.Context, query string) (domain.SearchIntent, Source) {
	if e.gen == nil {
		return ExtractFallback(query), SourceFallback
	}

	raw, err := e.gen.Generate(ctx, buildPrompt(query))
	if err != nil {
		e.logger.Warn("Intent model call failed, using fallback", zap.Error(err))
		return ExtractFallback(query), SourceFallback
	}

	parsed, err := parseIntentJSON(raw)
	if err != nil {
		e.logger.Warn("Intent model output unparseable, using fallback",
			zap.String("output", truncate(raw, 200)),
			zap.Error(err),
		)
		return ExtractFallback(query), SourceFallback
	}

	return domain.SanitizeIntent(parsed), SourceModel
}

// buildPrompt asks for a bare JSON object, with few-shot examples to
// pin down synonym mapping.
func buildPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("You are a recipe search assistant. Extract structured search intent from the user query.\n\n")
	sb.WriteString("Recognized dietary tags: ")
	sb.WriteString(strings.Join(domain.TaxonomyTags(domain.DietarySynonyms), ", "))
	sb.WriteString("\nRecognized health tags: ")
	sb.WriteString(strings.Join(domain.TaxonomyTags(domain.HealthSynonyms), ", "))
	sb.WriteString("\nRecognized health benefits: ")
	sb.WriteString(strings.Join(domain.TaxonomyTags(domain.BenefitSynonyms), ", "))
	sb.WriteString("\n\nRespond with ONLY a JSON object of this exact shape, no prose:\n")
	sb.WriteString(`{"dietary_tags": [], "health_tags": [], "health_benefits": [], "total_time": null, "servings": null}`)
	sb.WriteString("\ntotal_time is the target total minutes; servings is the target serving count.\n")
	sb.WriteString("\nExamples:\n")
	sb.WriteString("Query: \"plant-based dinner ready in 20 minutes\"\n")
	sb.WriteString(`{"dietary_tags": ["vegan"], "health_tags": [], "health_benefits": [], "total_time": 20, "servings": null}`)
	sb.WriteString("\nQuery: \"heart-healthy fish for 2\"\n")
	sb.WriteString(`{"dietary_tags": ["pescatarian"], "health_tags": [], "health_benefits": ["heart-health"], "total_time": null, "servings": 2}`)
	sb.WriteString("\n\nQuery: \"")
	sb.WriteString(query)
	sb.WriteString("\"\n")
	return sb.String()
}

// parseIntentJSON extracts the first JSON object from model output,
// unwrapping fenced code blocks.
func parseIntentJSON(raw string) (map[string]any, error) {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(s[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse intent JSON: %w", err)
	}
	return parsed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
