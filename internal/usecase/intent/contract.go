package intent

import "context"

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source identifies which extractor produced an intent.
type Source string

const (
	// SourceModel means the language model produced the intent.
	SourceModel Source = "ai_model"
	// SourceFallback means the keyword extractor produced the intent.
	SourceFallback Source = "keyword_fallback"
)
