// Package enhance rewrites recipe descriptions with a language model.
package enhance

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
)

const maxDescriptionWords = 60

// Input describes the recipe whose description should be rewritten.
type Input struct {
	Title       string
	Description string
	Ingredients []string
}

// Service generates enhanced recipe descriptions.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// New creates a Service.
func New(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Enhance returns a rewritten description for the given recipe. It
// fails when no generator is configured or the provider call fails.
func (s *Service) Enhance(ctx context.Context, in Input) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", fmt.Errorf("enhance: %w", domain.ErrEmptyQuery)
	}

	if s.gen == nil {
		return "", fmt.Errorf("enhance: %w: no generator configured", domain.ErrGenerationProviderError)
	}

	out, err := s.gen.Generate(ctx, buildPrompt(title, in.Description, in.Ingredients))
	if err != nil {
		return "", fmt.Errorf("enhance %q: %w", title, err)
	}

	enhanced := strings.TrimSpace(strings.Trim(strings.TrimSpace(out), `"`))
	if enhanced == "" {
		return "", fmt.Errorf("enhance %q: %w: empty completion", title, domain.ErrGenerationProviderError)
	}

	s.logger.Debug("description enhanced",
		zap.String("title", title),
		zap.Int("length", len(enhanced)))

	return enhanced, nil
}

func buildPrompt(title, description string, ingredients []string) string {
	var b strings.Builder
	b.WriteString("Rewrite this recipe description to be appetizing and concise (under ")
	fmt.Fprintf(&b, "%d words). Return only the new description, no preamble.\n\n", maxDescriptionWords)
	fmt.Fprintf(&b, "Title: %s\n", title)
	if strings.TrimSpace(description) != "" {
		fmt.Fprintf(&b, "Current description: %s\n", description)
	}
	if len(ingredients) > 0 {
		fmt.Fprintf(&b, "Key ingredients: %s\n", strings.Join(ingredients, ", "))
	}
	return b.String()
}
