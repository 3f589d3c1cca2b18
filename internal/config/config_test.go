package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "postgres://localhost:5432/forkful"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database dsn")
	}
}

func TestValidate_CacheEnabledWithoutAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled cache without addrs")
	}
}

func TestValidate_OverFetchBelowMaxResults(t *testing.T) {
	cfg := validConfig()
	cfg.Search.OverFetch = 2
	cfg.Search.MaxResults = 3

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for over_fetch < max_results")
	}
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MinRelevance = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold outside [0,1]")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("expected MaxConns=10, got %d", cfg.Database.MaxConns)
	}
	if cfg.AI.Dimensions != 1536 {
		t.Errorf("expected Dimensions=1536, got %d", cfg.AI.Dimensions)
	}
	if cfg.AI.CallTimeoutSec != 10 {
		t.Errorf("expected CallTimeoutSec=10, got %d", cfg.AI.CallTimeoutSec)
	}
	if cfg.Search.MaxResults != 3 {
		t.Errorf("expected MaxResults=3, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.OverFetch != 20 {
		t.Errorf("expected OverFetch=20, got %d", cfg.Search.OverFetch)
	}
	if cfg.Search.MinRelevance != 0.6 {
		t.Errorf("expected MinRelevance=0.6, got %g", cfg.Search.MinRelevance)
	}
	if cfg.Search.TextFallbackSimilarity != 0.6 {
		t.Errorf("expected TextFallbackSimilarity=0.6, got %g", cfg.Search.TextFallbackSimilarity)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{MaxConns: 25, ReadinessTimeout: 15},
		Search:   SearchConfig{MaxResults: 5, OverFetch: 50, MinRelevance: 0.7},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("expected MaxConns=25, got %d", cfg.Database.MaxConns)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("expected MaxResults=5, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.MinRelevance != 0.7 {
		t.Errorf("expected MinRelevance=0.7, got %g", cfg.Search.MinRelevance)
	}
}

func TestRelevancePolicy_Conversion(t *testing.T) {
	cfg := validConfig()
	policy := cfg.RelevancePolicy()

	if policy.MaxResults != cfg.Search.MaxResults {
		t.Errorf("MaxResults mismatch: %d != %d", policy.MaxResults, cfg.Search.MaxResults)
	}
	if policy.MinSimilarity != cfg.Search.MinSimilarity {
		t.Errorf("MinSimilarity mismatch: %g != %g", policy.MinSimilarity, cfg.Search.MinSimilarity)
	}
}
