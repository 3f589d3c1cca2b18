package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
	enhanceuc "github.com/forkful/forkful/internal/usecase/enhance"
	healthuc "github.com/forkful/forkful/internal/usecase/health"
	"github.com/forkful/forkful/internal/usecase/intent"
	recipeuc "github.com/forkful/forkful/internal/usecase/recipe"
	searchuc "github.com/forkful/forkful/internal/usecase/search"
)

// --- Fakes ---

type fakeRepo struct {
	similar    []domain.Candidate
	similarErr error
	text       []domain.Candidate
	textErr    error
	viewErr    error
	views      int
}

func (f *fakeRepo) SearchSimilar(
	_ context.Context, _ []float32, _ float64, _ int,
) ([]domain.Candidate, error) {
	return f.similar, f.similarErr
}

func (f *fakeRepo) SearchText(
	_ context.Context, _ string, fallbackSimilarity float64, _ int,
) ([]domain.Candidate, error) {
	for i := range f.text {
		f.text[i].SimilarityScore = fallbackSimilarity
	}
	return f.text, f.textErr
}

func (f *fakeRepo) RecordView(_ context.Context, _ uuid.UUID) error {
	f.views++
	return f.viewErr
}

type fakeIntents struct{}

func (fakeIntents) Extract(_ context.Context, query string) (domain.SearchIntent, intent.Source) {
	return intent.ExtractFallback(query), intent.SourceFallback
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec}, nil
}

type fakeGenerator struct {
	output string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return f.output, f.err
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

func newTestServer(repo *fakeRepo, embed searchuc.Embedder, gen enhanceuc.Generator) *Server {
	logger := zap.NewNop()
	policy := domain.DefaultRelevancePolicy()
	return NewServer(
		searchuc.New(repo, fakeIntents{}, embed, policy, logger),
		enhanceuc.New(gen, logger),
		recipeuc.New(repo, logger),
		healthuc.New(&fakePinger{}, nil),
		policy,
		logger,
	)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, out
}

func ketoRecipe(id string, similarity float64) domain.Candidate {
	return domain.Candidate{
		Recipe: domain.Recipe{
			ID:          id,
			Title:       "Keto Chicken Dinner",
			Description: "A quick keto chicken dinner",
			DietaryTags: []string{"keto", "low-carb"},
		},
		SimilarityScore: similarity,
	}
}

// --- Tests ---

func TestHandleSearch_Success(t *testing.T) {
	repo := &fakeRepo{similar: []domain.Candidate{ketoRecipe("a", 0.92)}}
	srv := newTestServer(repo, &fakeEmbedder{vec: []float32{0.1}}, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/search",
		`{"query": "quick keto dinner"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["query"] != "quick keto dinner" {
		t.Errorf("unexpected query echo: %v", body["query"])
	}

	results, ok := body["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("expected 1 result, got %v", body["results"])
	}
	first := results[0].(map[string]any)
	if first["relevance_score"] == nil || first["similarity_score"] == nil {
		t.Error("results must expose both scores")
	}

	pi, ok := body["processing_info"].(map[string]any)
	if !ok {
		t.Fatal("missing processing_info")
	}
	if pi["search_method"] != "vector" {
		t.Errorf("expected vector method, got %v", pi["search_method"])
	}
	if pi["intent_extraction"] != "keyword_fallback" {
		t.Errorf("unexpected intent source: %v", pi["intent_extraction"])
	}

	ri, ok := body["relevance_info"].(map[string]any)
	if !ok {
		t.Fatal("missing relevance_info")
	}
	if ri["max_results"] != float64(3) {
		t.Errorf("expected max_results 3, got %v", ri["max_results"])
	}
	if body["timestamp"] == nil {
		t.Error("missing timestamp")
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	repo := &fakeRepo{}
	srv := newTestServer(repo, nil, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/search", `{"query": "  "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Error("expected success false")
	}
	if body["error"] != "empty_query" {
		t.Errorf("unexpected error code: %v", body["error"])
	}
}

func TestHandleSearch_MalformedBody(t *testing.T) {
	srv := newTestServer(&fakeRepo{}, nil, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/search", `{"query": `)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "bad_request" {
		t.Errorf("unexpected error code: %v", body["error"])
	}
}

func TestHandleSearch_RetrievalFailure(t *testing.T) {
	repo := &fakeRepo{textErr: errors.New("connection refused")}
	srv := newTestServer(repo, nil, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/search", `{"query": "salmon"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Error("expected success false")
	}
	if body["error"] != "search_failed" {
		t.Errorf("unexpected error code: %v", body["error"])
	}
	if body["debug_info"] == nil {
		t.Error("expected debug_info on retrieval failure")
	}
}

func TestHandleSearch_VectorErrorDegradesToText(t *testing.T) {
	repo := &fakeRepo{
		similarErr: errors.New("index missing"),
		text:       []domain.Candidate{ketoRecipe("a", 0)},
	}
	srv := newTestServer(repo, &fakeEmbedder{vec: []float32{0.1}}, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/search",
		`{"query": "keto dinner"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	pi := body["processing_info"].(map[string]any)
	if pi["search_method"] != "text" {
		t.Errorf("expected text method, got %v", pi["search_method"])
	}
}

func TestHandleRecordView(t *testing.T) {
	repo := &fakeRepo{}
	srv := newTestServer(repo, nil, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost,
		"/recipes/"+uuid.NewString()+"/view", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Error("expected success true")
	}
	if repo.views != 1 {
		t.Errorf("expected 1 recorded view, got %d", repo.views)
	}
}

func TestHandleRecordView_InvalidID(t *testing.T) {
	repo := &fakeRepo{}
	srv := newTestServer(repo, nil, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/recipes/not-a-uuid/view", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "invalid_recipe_id" {
		t.Errorf("unexpected error code: %v", body["error"])
	}
	if repo.views != 0 {
		t.Error("invalid ID must not reach the store")
	}
}

func TestHandleEnhance_Success(t *testing.T) {
	gen := &fakeGenerator{output: "A silky weeknight salmon bowl."}
	srv := newTestServer(&fakeRepo{}, nil, gen)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/enhance-description",
		`{"title": "Salmon Bowl", "description": "salmon with rice"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["enhanced_description"] != "A silky weeknight salmon bowl." {
		t.Errorf("unexpected description: %v", body["enhanced_description"])
	}
}

func TestHandleEnhance_ProviderFailure(t *testing.T) {
	gen := &fakeGenerator{err: domain.ErrGenerationProviderError}
	srv := newTestServer(&fakeRepo{}, nil, gen)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/enhance-description",
		`{"title": "Salmon Bowl"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if body["error"] != "generation_provider_error" {
		t.Errorf("unexpected error code: %v", body["error"])
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeRepo{}, nil, nil)

	rec, body := doJSON(t, srv.Routes(), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body["status"])
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(&fakeRepo{}, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Error("expected POST in allowed methods")
	}
}

func TestCORS_HeadersOnNormalResponse(t *testing.T) {
	srv := newTestServer(&fakeRepo{}, nil, nil)

	rec, _ := doJSON(t, srv.Routes(), http.MethodGet, "/health", "")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS headers on all responses, got origin %q", got)
	}
}
