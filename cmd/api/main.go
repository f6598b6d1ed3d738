// @title                       Trendwyse Dashboard API
// @version                     1.0
// @description                 Product potential scoring, alerts and AI assistant for e-commerce analysts.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/api"
	"github.com/trendwyse/dashboard/internal/api/handler"
	"github.com/trendwyse/dashboard/internal/core/ports"
	"github.com/trendwyse/dashboard/internal/core/service"
	"github.com/trendwyse/dashboard/internal/infrastructure/config"
	"github.com/trendwyse/dashboard/internal/infrastructure/db/memory"
	mongostore "github.com/trendwyse/dashboard/internal/infrastructure/db/mongo"
	"github.com/trendwyse/dashboard/internal/infrastructure/db/postgres"
	redisstore "github.com/trendwyse/dashboard/internal/infrastructure/db/redis"
	"github.com/trendwyse/dashboard/internal/infrastructure/scoring/openai"
	"github.com/trendwyse/dashboard/pkg/logger"
)

var version = "dev"

// storage is the set of repositories selected by STORE_DRIVER.
type storage struct {
	users    ports.AuthRepository
	analyses ports.AnalysisRepository
	alerts   ports.AlertRepository
	denylist ports.TokenDenylist
	ready    []handler.Dependency
	closers  []func(context.Context) error
}

func (s *storage) close(ctx context.Context, log zerolog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("closing storage")
		}
	}
}

// loggerOptions derives the process logger settings from the loaded configuration.
func loggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "trendwyse-api",
		Version: version,
	}
}

func main() {
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(loggerOptions(cfg)).With().Str("env", cfg.Env).Logger()

	ctx := context.Background()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("storage init failed")
	}

	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; scoring and chat requests will fail")
	}
	ai := openai.NewClient(openai.Config{
		APIKey:             cfg.OpenAI.APIKey,
		BaseURL:            cfg.OpenAI.BaseURL,
		Model:              cfg.OpenAI.Model,
		ScoringTemperature: cfg.OpenAI.ScoringTemperature,
		ChatTemperature:    cfg.OpenAI.ChatTemperature,
		ChatMaxTokens:      cfg.OpenAI.ChatMaxTokens,
	})

	clock := service.SystemClock{}
	e := api.NewRouter(api.Deps{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSAllowOrigins,
		Auth:        service.NewAuthService(store.users, store.denylist, cfg.JWTSecret, cfg.TokenTTL, clock),
		Denylist:    store.denylist,
		Analyses:    service.NewAnalysisService(store.analyses, store.alerts, ai, clock, cfg.OpenAI.ScoringTimeout, log),
		Alerts:      service.NewAlertService(store.alerts, clock, log),
		Dashboard:   service.NewDashboardService(store.analyses),
		Assistant:   service.NewAssistantService(ai, clock, log),
		Readiness:   store.ready,
	})

	// start requests hold the connection for the whole scoring call
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.OpenAI.ScoringTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("driver", cfg.StoreDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.OpenAI.ScoringTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	store.close(shutdownCtx, log)
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	s := &storage{}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem := memory.NewStore()
		deny := memory.NewTokenDenylist()
		s.users, s.analyses, s.alerts, s.denylist = mem.Users, mem.Analyses, mem.Alerts, deny
		s.ready = append(s.ready, handler.Dependency{Name: "memory", Pinger: mem})
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return s, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)
		mongo := mongostore.NewStore(db)
		if err := mongo.EnsureIndexes(ctx); err != nil {
			s.close(ctx, log)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		s.users, s.analyses, s.alerts = mongo.Users, mongo.Analyses, mongo.Alerts
		s.ready = append(s.ready, handler.Dependency{Name: "mongodb", Pinger: mongo})

	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, cfg.Postgres.URL, postgres.Options{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		if cfg.AutoMigrate {
			if err := postgres.RunMigrations(ctx, db); err != nil {
				s.close(ctx, log)
				return nil, err
			}
			log.Info().Msg("postgres migrations applied")
		}
		pg := postgres.NewStore(db)
		s.users, s.analyses, s.alerts = pg.Users, pg.Analyses, pg.Alerts
		s.ready = append(s.ready, handler.Dependency{Name: "postgres", Pinger: pg})

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		s.close(ctx, log)
		return nil, err
	}
	s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
	deny := redisstore.NewTokenDenylist(rdb)
	s.denylist = deny
	s.ready = append(s.ready, handler.Dependency{Name: "redis", Pinger: deny})

	return s, nil
}
