// Package chi wires the search pipeline to an HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
	enhanceuc "github.com/forkful/forkful/internal/usecase/enhance"
	healthuc "github.com/forkful/forkful/internal/usecase/health"
	recipeuc "github.com/forkful/forkful/internal/usecase/recipe"
	searchuc "github.com/forkful/forkful/internal/usecase/search"
)

// Server exposes the recipe search API.
type Server struct {
	search  *searchuc.Service
	enhance *enhanceuc.Service
	recipes *recipeuc.Service
	health  *healthuc.Service
	policy  domain.RelevancePolicy
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	enhance *enhanceuc.Service,
	recipes *recipeuc.Service,
	health *healthuc.Service,
	policy domain.RelevancePolicy,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:  search,
		enhance: enhance,
		recipes: recipes,
		health:  health,
		policy:  policy,
		logger:  logger,
	}
}

// Routes mounts all endpoints on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(CORS)

	r.Post("/search", s.handleSearch)
	r.Post("/recipes/{id}/view", s.handleRecordView)
	r.Post("/enhance-description", s.handleEnhance)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type recipeResult struct {
	ID               string    `json:"id"`
	CreatorID        string    `json:"creator_id,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	PrepTimeMinutes  int       `json:"prep_time_minutes"`
	CookTimeMinutes  int       `json:"cook_time_minutes"`
	TotalTimeMinutes int       `json:"total_time_minutes"`
	Servings         int       `json:"servings"`
	Ingredients      []string  `json:"ingredients,omitempty"`
	Instructions     []string  `json:"instructions,omitempty"`
	DietaryTags      []string  `json:"dietary_tags"`
	HealthTags       []string  `json:"health_tags"`
	HealthBenefits   []string  `json:"health_benefits"`
	NutritionSummary string    `json:"nutrition_summary,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	SimilarityScore  float64   `json:"similarity_score"`
	RelevanceScore   float64   `json:"relevance_score"`
}

type relevanceInfo struct {
	MaxResults             int     `json:"max_results"`
	MinSimilarityThreshold float64 `json:"min_similarity_threshold"`
	MinRelevanceThreshold  float64 `json:"min_relevance_threshold"`
	PerfectMatchThreshold  float64 `json:"perfect_match_threshold"`
	HighRelevanceCount     int     `json:"high_relevance_count"`
	PerfectMatches         int     `json:"perfect_matches"`
}

type processingInfo struct {
	IntentExtraction    string `json:"intent_extraction"`
	EmbeddingGeneration string `json:"embedding_generation"`
	SearchMethod        string `json:"search_method"`
}

type searchResponse struct {
	Success        bool                `json:"success"`
	Query          string              `json:"query"`
	Intent         domain.SearchIntent `json:"intent"`
	Results        []recipeResult      `json:"results"`
	TotalResults   int                 `json:"total_results"`
	RelevanceInfo  relevanceInfo       `json:"relevance_info"`
	ProcessingInfo processingInfo      `json:"processing_info"`
	Timestamp      string              `json:"timestamp"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	DebugInfo string `json:"debug_info,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body", err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]recipeResult, len(resp.Results))
	for i := range resp.Results {
		results[i] = candidateToResult(resp.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:      true,
		Query:        resp.Query,
		Intent:       resp.Intent,
		Results:      results,
		TotalResults: len(results),
		RelevanceInfo: relevanceInfo{
			MaxResults:             s.policy.MaxResults,
			MinSimilarityThreshold: s.policy.MinSimilarity,
			MinRelevanceThreshold:  s.policy.MinRelevance,
			PerfectMatchThreshold:  s.policy.PerfectMatch,
			HighRelevanceCount:     searchuc.CountAtOrAbove(resp.Results, s.policy.HighRelevance),
			PerfectMatches:         searchuc.CountAtOrAbove(resp.Results, s.policy.PerfectMatch),
		},
		ProcessingInfo: processingInfo{
			IntentExtraction:    string(resp.IntentSource),
			EmbeddingGeneration: string(resp.EmbeddingStatus),
			SearchMethod:        string(resp.Method),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "id")

	if err := s.recipes.RecordView(r.Context(), recipeID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type enhanceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body", err.Error())
		return
	}

	enhanced, err := s.enhance.Enhance(r.Context(), enhanceuc.Input{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"enhanced_description": enhanced,
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "empty_query",
			"Query must not be empty", "")
	case errors.Is(err, domain.ErrInvalidRecipeID):
		writeError(w, http.StatusBadRequest, "invalid_recipe_id",
			"Recipe ID must be a valid UUID", "")
	case errors.Is(err, domain.ErrGenerationProviderError):
		s.logger.Warn("generation provider error", zap.Error(err))
		writeError(w, http.StatusBadGateway, "generation_provider_error",
			"Description enhancement is temporarily unavailable", "")
	case errors.Is(err, domain.ErrRetrievalFailed):
		s.logger.Error("retrieval failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search_failed",
			"Search is temporarily unavailable", err.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error",
			"internal error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message, debug string) {
	writeJSON(w, status, errorResponse{
		Success:   false,
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DebugInfo: debug,
	})
}

func candidateToResult(c domain.Candidate) recipeResult {
	return recipeResult{
		ID:               c.ID,
		CreatorID:        c.CreatorID,
		Title:            c.Title,
		Description:      c.Description,
		PrepTimeMinutes:  c.PrepTimeMinutes,
		CookTimeMinutes:  c.CookTimeMinutes,
		TotalTimeMinutes: c.TotalTimeMinutes(),
		Servings:         c.Servings,
		Ingredients:      c.Ingredients,
		Instructions:     c.Instructions,
		DietaryTags:      emptyIfNil(c.DietaryTags),
		HealthTags:       emptyIfNil(c.HealthTags),
		HealthBenefits:   emptyIfNil(c.HealthBenefits),
		NutritionSummary: c.NutritionSummary,
		CreatedAt:        c.CreatedAt,
		SimilarityScore:  c.SimilarityScore,
		RelevanceScore:   c.RelevanceScore,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
