package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bisnispintar/internal/config"
	"bisnispintar/internal/infra"
	"bisnispintar/internal/middleware"
	"bisnispintar/internal/router"
	"bisnispintar/internal/service"
	"bisnispintar/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	repo, err := infra.NewItemRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inventorySvc, err := service.NewInventoryService(ctx, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load inventory")
	}

	// The advisor only gets a remote model when a key is configured; a nil
	// Completer makes it answer with the no-key fallback.
	var (
		completer service.Completer
		breaker   *infra.CircuitBreaker
	)
	if cfg.APIKey != "" {
		breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig())
		completer = infra.NewLLMClient(cfg.APIKey, cfg.AdvisorBaseURL, cfg.AdvisorModel, cfg.AdvisorTimeout(), breaker)
	} else {
		log.Warn().Msg("API_KEY not set, advisor will answer with the fallback message")
	}
	advisorSvc := service.NewAdvisorService(inventorySvc, completer, cfg.AdvisorMaxInflight)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.RunPurge(5*time.Minute, ctx.Done())

	cronDone := worker.StartRetryCron(ctx, inventorySvc, worker.DefaultRetryInterval)

	r := router.New(cfg, router.Deps{
		Inventory:      inventorySvc,
		Advisor:        advisorSvc,
		Repo:           repo,
		AdvisorBreaker: breaker,
		RateLimiter:    limiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AdvisorTimeout() + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", repo.Driver()).Msgf("BisnisPintar backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	<-cronDone

	// last chance for a change whose save failed
	if err := inventorySvc.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("unsaved changes lost on shutdown")
	}
	if err := repo.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close storage")
	}
	log.Info().Msg("server exited")
}
