package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forkful/forkful/internal/domain"
)

// Config holds the forkful API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	AI       AIConfig       `yaml:"ai"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	DSN              string `yaml:"dsn"`
	MaxConns         int    `yaml:"max_conns"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// CacheConfig holds the optional Redis embedding cache settings.
type CacheConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// AIConfig holds the OpenAI-compatible provider settings. One provider
// serves both chat completion and embeddings.
type AIConfig struct {
	Provider       string `yaml:"provider"`
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
	Dimensions     int    `yaml:"dimensions"`
	CallTimeoutSec int    `yaml:"call_timeout_sec"`
}

// SearchConfig holds relevance ranking constants. Fixed at process
// start; read-only thereafter.
type SearchConfig struct {
	MinSimilarity          float64 `yaml:"min_similarity"`
	MinRelevance           float64 `yaml:"min_relevance"`
	HighRelevance          float64 `yaml:"high_relevance"`
	PerfectMatch           float64 `yaml:"perfect_match"`
	TextFallbackSimilarity float64 `yaml:"text_fallback_similarity"`
	MaxResults             int     `yaml:"max_results"`
	OverFetch              int     `yaml:"over_fetch"`
}

// RelevancePolicy converts the search section into the domain policy.
func (c *Config) RelevancePolicy() domain.RelevancePolicy {
	return domain.RelevancePolicy{
		MinSimilarity:          c.Search.MinSimilarity,
		MinRelevance:           c.Search.MinRelevance,
		HighRelevance:          c.Search.HighRelevance,
		PerfectMatch:           c.Search.PerfectMatch,
		TextFallbackSimilarity: c.Search.TextFallbackSimilarity,
		MaxResults:             c.Search.MaxResults,
		OverFetch:              c.Search.OverFetch,
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.AI.ChatModel == "" {
		c.AI.ChatModel = "gpt-4o-mini"
	}
	if c.AI.EmbeddingModel == "" {
		c.AI.EmbeddingModel = "text-embedding-3-small"
	}
	if c.AI.Dimensions <= 0 {
		c.AI.Dimensions = domain.DefaultEmbeddingDimensions
	}
	if c.AI.CallTimeoutSec <= 0 {
		c.AI.CallTimeoutSec = 10
	}

	def := domain.DefaultRelevancePolicy()
	if c.Search.MinSimilarity <= 0 {
		c.Search.MinSimilarity = def.MinSimilarity
	}
	if c.Search.MinRelevance <= 0 {
		c.Search.MinRelevance = def.MinRelevance
	}
	if c.Search.HighRelevance <= 0 {
		c.Search.HighRelevance = def.HighRelevance
	}
	if c.Search.PerfectMatch <= 0 {
		c.Search.PerfectMatch = def.PerfectMatch
	}
	if c.Search.TextFallbackSimilarity <= 0 {
		c.Search.TextFallbackSimilarity = def.TextFallbackSimilarity
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = def.MaxResults
	}
	if c.Search.OverFetch <= 0 {
		c.Search.OverFetch = def.OverFetch
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	if c.Search.OverFetch < c.Search.MaxResults {
		return fmt.Errorf(
			"search.over_fetch (%d) must be at least search.max_results (%d)",
			c.Search.OverFetch, c.Search.MaxResults,
		)
	}
	thresholds := map[string]float64{
		"search.min_similarity": c.Search.MinSimilarity,
		"search.min_relevance":  c.Search.MinRelevance,
		"search.high_relevance": c.Search.HighRelevance,
		"search.perfect_match":  c.Search.PerfectMatch,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, v)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
