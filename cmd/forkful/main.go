package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/config"
	dbPostgres "github.com/forkful/forkful/internal/db/postgres"
	dbRedis "github.com/forkful/forkful/internal/db/redis"
	"github.com/forkful/forkful/internal/domain"
	logpkg "github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/metrics"
	"github.com/forkful/forkful/internal/repository/embcache"
	reciperepo "github.com/forkful/forkful/internal/repository/recipe"
	chiTransport "github.com/forkful/forkful/internal/transport/chi"
	openaiTransport "github.com/forkful/forkful/internal/transport/openai"
	embeddinguc "github.com/forkful/forkful/internal/usecase/embedding"
	enhanceuc "github.com/forkful/forkful/internal/usecase/enhance"
	healthuc "github.com/forkful/forkful/internal/usecase/health"
	intentuc "github.com/forkful/forkful/internal/usecase/intent"
	recipeuc "github.com/forkful/forkful/internal/usecase/recipe"
	searchuc "github.com/forkful/forkful/internal/usecase/search"
	"github.com/forkful/forkful/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting forkful search API",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	ctx := context.Background()

	pg, err := dbPostgres.NewClient(ctx, dbPostgres.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		logger.Fatal("Failed to create Postgres client", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterPipelineMetrics()

	// Optional embedding cache. Startup proceeds without it when the
	// cache backend cannot be reached.
	var cache *dbRedis.Store
	if cfg.Cache.Enabled {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Warn("Embedding cache unavailable", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
			logger.Info("Embedding cache connected", zap.Strings("addrs", cfg.Cache.Addrs))
		}
	}

	embedder, checker := buildEmbedder(cfg, cache, logger)

	var generator *openaiTransport.Generator
	if cfg.AI.APIKey != "" {
		generator = openaiTransport.NewGenerator(&openaiTransport.Config{
			APIKey:   cfg.AI.APIKey,
			BaseURL:  cfg.AI.BaseURL,
			Model:    cfg.AI.ChatModel,
			Provider: cfg.AI.Provider,
			Logger:   logger,
		})
	} else {
		logger.Warn("No AI credentials; intent extraction runs in keyword-fallback mode")
	}

	policy := cfg.RelevancePolicy()
	repo := reciperepo.New(pg.Pool())

	var intentGen intentuc.Generator
	if generator != nil {
		intentGen = generator
	}
	intents := intentuc.New(intentGen, logger)

	searchSvc := searchuc.New(repo, intents, embedder, policy, logger).
		WithCallTimeout(time.Duration(cfg.AI.CallTimeoutSec) * time.Second)

	var enhanceGen enhanceuc.Generator
	if generator != nil {
		enhanceGen = generator
	}
	enhanceSvc := enhanceuc.New(enhanceGen, logger)
	recipeSvc := recipeuc.New(repo, logger)
	healthSvc := healthuc.New(pg, checker)

	server := chiTransport.NewServer(searchSvc, enhanceSvc, recipeSvc, healthSvc, policy, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
// Returns nil when no credentials are configured; search then runs text-only.
func buildEmbedder(
	cfg config.Config, cache *dbRedis.Store, logger *zap.Logger,
) (domain.Embedder, healthuc.ProviderChecker) {
	if cfg.AI.APIKey == "" {
		logger.Warn("No AI credentials; vector search disabled")
		return nil, nil
	}

	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.AI.APIKey,
		BaseURL:    cfg.AI.BaseURL,
		Model:      cfg.AI.EmbeddingModel,
		Dimensions: cfg.AI.Dimensions,
		Provider:   cfg.AI.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if cache != nil {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		embedder = embcache.New(base, cache, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.AI.Provider, cfg.AI.EmbeddingModel, logger,
	)

	logger.Info("Embedder created",
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", cfg.AI.EmbeddingModel),
		zap.Int("dimensions", cfg.AI.Dimensions),
	)

	return embedder, base
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
