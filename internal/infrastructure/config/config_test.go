package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.TokenTTL != 24*time.Hour {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4o" || cfg.OpenAI.ScoringTimeout != time.Minute || cfg.OpenAI.ChatMaxTokens != 500 {
		t.Errorf("unexpected openai defaults: %+v", cfg.OpenAI)
	}
	if cfg.OpenAI.ScoringTemperature != 0.7 || cfg.OpenAI.ChatTemperature != 0.8 {
		t.Errorf("unexpected temperatures: %+v", cfg.OpenAI)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Errorf("unexpected cors origins: %v", cfg.CORSAllowOrigins)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "secret",
		"STORE_DRIVER":       "postgres",
		"DATABASE_URL":       "postgres://app@localhost/trendwyse",
		"SCORING_TIMEOUT":    "15s",
		"CORS_ALLOW_ORIGINS": "https://app.trendwyse.com,http://localhost:5173",
		"ENV":                "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != DriverPostgres || cfg.Postgres.URL == "" {
		t.Errorf("unexpected store settings: %+v", cfg.Postgres)
	}
	if cfg.OpenAI.ScoringTimeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.OpenAI.ScoringTimeout)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Errorf("expected two origins, got %v", cfg.CORSAllowOrigins)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":       {},
		"unknown driver":       {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"postgres without url": {"JWT_SECRET": "s", "STORE_DRIVER": "postgres"},
		"zero scoring timeout": {"JWT_SECRET": "s", "SCORING_TIMEOUT": "0s"},
		"malformed token ttl":  {"JWT_SECRET": "s", "TOKEN_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
