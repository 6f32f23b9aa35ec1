// Package main provides the promptstitch server entry point.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"

	"github.com/promptstitch/promptstitch/internal/config"
	"github.com/promptstitch/promptstitch/internal/generate"
	"github.com/promptstitch/promptstitch/internal/server"
	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/internal/store/memory"
	"github.com/promptstitch/promptstitch/internal/store/sqlite"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Parse flags
	addr := flag.String("addr", "", "Listen address (default from PROMPTSTITCH_ADDR)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Setup logging
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down")
		cancel()
	}()

	// Initialize the store backend
	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		if err := config.EnsureDataDir(); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure data directory")
		}
		st, err = sqlite.NewStore(sqlite.Config{
			Path:     cfg.SQLitePath,
			LogLevel: gormlogger.Silent,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize SQLite store")
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Using SQLite store")
	default:
		st = memory.NewStore()
		log.Info().Msg("Using in-memory store")
	}
	defer st.Close()

	// Initialize the prompt generator (runs unconfigured when the
	// completion-provider credentials are absent)
	gen := generate.New(generate.Config{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
	})
	if !gen.Configured() {
		log.Warn().Msg("AI credentials missing, prompt generation disabled")
	}

	svc := server.New(Version, cfg, st, gen)
	log.Info().Str("version", Version).Msg("Starting promptstitch")

	if err := svc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
