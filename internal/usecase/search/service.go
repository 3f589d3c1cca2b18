// Package search implements the recipe search pipeline: concurrent
// query understanding, candidate retrieval with fallback, relevance
// scoring, and result selection.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
	"github.com/forkful/forkful/internal/metrics"
	"github.com/forkful/forkful/internal/usecase/intent"
)

// Method identifies which retrieval strategy produced the candidates.
type Method string

const (
	// MethodVector means similarity search over the embedding index.
	MethodVector Method = "vector"
	// MethodText means ILIKE substring matching on title/description.
	MethodText Method = "text"
	// MethodNone means no retrieval succeeded.
	MethodNone Method = "none"
)

// EmbeddingStatus reports how embedding generation settled.
type EmbeddingStatus string

const (
	// EmbeddingOK means a query vector was produced.
	EmbeddingOK EmbeddingStatus = "ok"
	// EmbeddingUnavailable means the provider failed or is not configured;
	// retrieval degrades to text search.
	EmbeddingUnavailable EmbeddingStatus = "unavailable"
)

// Response is the outcome of one search request.
type Response struct {
	Query           string
	Intent          domain.SearchIntent
	Results         []domain.Candidate
	Method          Method
	IntentSource    intent.Source
	EmbeddingStatus EmbeddingStatus
}

// Service orchestrates the search pipeline.
type Service struct {
	repo        Repository
	intents     IntentExtractor
	embed       Embedder // nil disables vector search
	policy      domain.RelevancePolicy
	callTimeout time.Duration
	logger      *zap.Logger
}

// New creates a search service.
func New(
	repo Repository, intents IntentExtractor, embed Embedder,
	policy domain.RelevancePolicy, logger *zap.Logger,
) *Service {
	return &Service{
		repo:        repo,
		intents:     intents,
		embed:       embed,
		policy:      policy,
		callTimeout: 10 * time.Second,
		logger:      logger,
	}
}

// WithCallTimeout sets the per-external-call timeout. Timeouts are
// treated like call failures and trigger the same fallbacks.
func (s *Service) WithCallTimeout(d time.Duration) *Service {
	if d > 0 {
		s.callTimeout = d
	}
	return s
}

// Search runs the full pipeline. Intent extraction and embedding
// generation run concurrently and settle independently; neither failure
// aborts the search. Only an empty query or a terminal retrieval
// failure surfaces as an error.
func (s *Service) Search(ctx context.Context, query string, limit int) (Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{}, domain.ErrEmptyQuery
	}

	searchIntent, src, vector := s.understand(ctx, query)

	embStatus := EmbeddingUnavailable
	if len(vector) > 0 {
		embStatus = EmbeddingOK
	}

	candidates, method, err := s.retrieve(ctx, query, vector)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return Response{}, err
	}

	for i := range candidates {
		candidates[i].RelevanceScore = Score(candidates[i], searchIntent, query)
	}

	results := Select(candidates, s.policy, limit)

	metrics.SearchesTotal.WithLabelValues(string(method)).Inc()
	metrics.SearchResultsReturned.Observe(float64(len(results)))

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.String("method", string(method)),
		zap.String("intent_source", string(src)),
		zap.String("embedding", string(embStatus)),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
	)

	return Response{
		Query:           query,
		Intent:          searchIntent,
		Results:         results,
		Method:          method,
		IntentSource:    src,
		EmbeddingStatus: embStatus,
	}, nil
}

// understand fans out intent extraction and embedding generation as two
// independent tasks and waits for both to settle. Each task gets its own
// timeout; a failed embedding yields a nil vector.
func (s *Service) understand(ctx context.Context, query string) (domain.SearchIntent, intent.Source, []float32) {
	var (
		wg        sync.WaitGroup
		intentRes domain.SearchIntent
		src       intent.Source
		vector    []float32
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		ictx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		intentRes, src = s.intents.Extract(ictx, query)
	}()

	if s.embed != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ectx, cancel := context.WithTimeout(ctx, s.callTimeout)
			defer cancel()
			result, err := s.embed.Embed(ectx, query)
			if err != nil {
				s.logger.Warn("query embedding failed, degrading to text search", zap.Error(err))
				return
			}
			vector = result.Embedding
		}()
	}

	wg.Wait()
	return intentRes, src, vector
}

// retrievalAttempt is one strategy in the ordered fallback chain.
type retrievalAttempt struct {
	method     Method
	applicable bool
	terminal   bool // an error here fails the search instead of falling through
	run        func(ctx context.Context) ([]domain.Candidate, error)
}

// retrieve evaluates retrieval strategies in order until one yields
// candidates. Vector-search errors degrade to text search; text-search
// errors are terminal. Zero candidates from the last strategy is a
// valid "no results" outcome.
func (s *Service) retrieve(ctx context.Context, query string, vector []float32) ([]domain.Candidate, Method, error) {
	attempts := []retrievalAttempt{
		{
			method:     MethodVector,
			applicable: len(vector) > 0,
			run: func(ctx context.Context) ([]domain.Candidate, error) {
				return s.repo.SearchSimilar(ctx, vector, s.policy.MinSimilarity, s.policy.OverFetch)
			},
		},
		{
			method:     MethodText,
			applicable: true,
			terminal:   true,
			run: func(ctx context.Context) ([]domain.Candidate, error) {
				return s.repo.SearchText(ctx, query, s.policy.TextFallbackSimilarity, s.policy.OverFetch)
			},
		},
	}

	for i, attempt := range attempts {
		if !attempt.applicable {
			continue
		}

		candidates, err := attempt.run(ctx)
		if err != nil {
			if attempt.terminal {
				return nil, MethodNone, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, err)
			}
			s.logger.Warn("retrieval strategy failed, falling through",
				zap.String("method", string(attempt.method)),
				zap.Error(err),
			)
			continue
		}

		last := i == len(attempts)-1
		if len(candidates) > 0 || last {
			return candidates, attempt.method, nil
		}
	}

	return nil, MethodNone, nil
}
