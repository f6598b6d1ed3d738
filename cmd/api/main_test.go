package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/infrastructure/config"
	"github.com/trendwyse/dashboard/pkg/logger"
)

func TestLoggerOptions(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		wantLevel  string
		wantPretty bool
	}{
		{"development", config.Config{Env: "development", LogLevel: "info"}, "info", true},
		{"production", config.Config{Env: "production", LogLevel: "warn"}, "warn", false},
		{"debug in staging", config.Config{Env: "staging", LogLevel: "debug"}, "debug", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := loggerOptions(&tc.cfg)
			if opts.Level != tc.wantLevel || opts.Pretty != tc.wantPretty {
				t.Fatalf("unexpected options %+v", opts)
			}
			if opts.Service != "trendwyse-api" || opts.Version != version {
				t.Fatalf("unexpected service fields %+v", opts)
			}
		})
	}
}

func TestLoggerOptions_LevelFromConfig(t *testing.T) {
	logger.Reset()
	t.Cleanup(func() {
		logger.Reset()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	opts := loggerOptions(&config.Config{Env: "production", LogLevel: "warn"})
	opts.Output = &buf
	log := logger.Init(opts)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("configured level not applied: %s", out)
	}
	if !strings.Contains(out, `"service":"trendwyse-api"`) {
		t.Fatalf("expected json output with service field, got %s", out)
	}
}
