package domain

import "errors"

var (
	// ErrEmptyQuery signals a missing or blank search query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrInvalidRecipeID signals a malformed recipe identifier.
	ErrInvalidRecipeID = errors.New("invalid recipe id")
	// ErrRetrievalFailed signals that the last retrieval fallback failed.
	ErrRetrievalFailed = errors.New("recipe retrieval failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a text-generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
)
