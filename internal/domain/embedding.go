package domain

import "context"

// DefaultEmbeddingDimensions matches the recipe embedding index.
const DefaultEmbeddingDimensions = 1536

// EmbeddingResult holds the vector and token usage of one embedding call.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// TextGenerator produces free text from a prompt. Used for intent
// extraction and description enhancement.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HealthChecker is implemented by providers that can verify availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
