package search

import (
	"context"

	"github.com/forkful/forkful/internal/domain"
	"github.com/forkful/forkful/internal/usecase/intent"
)

// Repository defines the storage contract for candidate retrieval.
type Repository interface {
	// SearchSimilar returns candidates whose embedding cosine similarity
	// to vector is at least minSimilarity, best first.
	SearchSimilar(ctx context.Context, vector []float32, minSimilarity float64, limit int) ([]domain.Candidate, error)

	// SearchText returns candidates whose title or description contains
	// the query, each assigned fallbackSimilarity.
	SearchText(ctx context.Context, query string, fallbackSimilarity float64, limit int) ([]domain.Candidate, error)
}

// IntentExtractor produces structured intent; it must not fail.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) (domain.SearchIntent, intent.Source)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
