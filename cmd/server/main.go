// Package main is the entry point for the portfolio diagnostic engine.
// It serves the questionnaire API: coin autocomplete, diagnostic generation
// with narrative analysis and gamification, and system monitoring.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/paradigma/diagnostico/internal/clientdata"
	"github.com/paradigma/diagnostico/internal/clients/coingecko"
	"github.com/paradigma/diagnostico/internal/config"
	"github.com/paradigma/diagnostico/internal/diagnostic"
	"github.com/paradigma/diagnostico/internal/narrative"
	"github.com/paradigma/diagnostico/internal/scheduler"
	"github.com/paradigma/diagnostico/internal/server"
	"github.com/paradigma/diagnostico/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting diagnostic engine")

	// Client data cache database. Holds CoinGecko responses with TTLs so the
	// free API tier survives traffic spikes. Safe to delete between runs.
	dbPath := filepath.Join(cfg.DataDir, "client_data.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("Failed to open client data database")
	}
	defer db.Close()

	if err := clientdata.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize client data schema")
	}

	cacheRepo := clientdata.NewRepository(db)
	coins := coingecko.NewClient(cfg.CoinGeckoAPIKey, cacheRepo, log)

	// Narrative provider is optional. Without credentials the scorer runs the
	// heuristic analysis only, which produces a complete diagnostic.
	var provider narrative.Provider
	if p := narrative.NewAnthropicProvider(narrative.AnthropicConfig{
		APIKey:  cfg.AnthropicAPIKey,
		Model:   cfg.NarrativeModel,
		Timeout: cfg.NarrativeTimeout,
	}, log); p != nil {
		provider = p
		log.Info().Str("model", cfg.NarrativeModel).Msg("Narrative provider enabled")
	} else {
		log.Warn().Msg("No Anthropic API key configured, using heuristic analysis only")
	}

	scorer := narrative.NewScorer(provider, log)
	diagnostics := diagnostic.NewService(scorer, coins, log)

	// Background jobs: keep the top-coins cache warm and purge expired
	// cache entries nightly.
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.TopCoinsRefreshCron, scheduler.NewWarmTopCoinsJob(coins, 200, log)); err != nil {
		log.Error().Err(err).Msg("Failed to schedule top coins warm job")
	}
	if err := sched.AddJob("0 4 * * *", clientdata.NewCleanupJob(cacheRepo, log)); err != nil {
		log.Error().Err(err).Msg("Failed to schedule cache cleanup job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:         log,
		Config:      cfg,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		Diagnostics: diagnostics,
		Coins:       coins,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with a deadline for in-flight diagnostic requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
