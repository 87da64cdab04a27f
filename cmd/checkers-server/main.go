// Package main serves checkers games over a local HTTP API so a browser or
// terminal client can act as the board for two players sharing a machine.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkers/cmd/checkers-server/cli"
	"checkers/internal/server/http"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"
	"checkers/internal/server/storage"

	"github.com/rs/zerolog/log"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "CLI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	setupLogging(cfg.logLevel, cfg.dev)

	if cfg.pidLock && cfg.pidPath == "" {
		log.Fatal().Msg("-pid-lock flag requires the -pid flag to be set")
	}

	if cfg.pidPath != "" {
		cleanup, err := managePIDFile(cfg.pidPath, cfg.pidLock)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to manage PID file")
		}
		defer cleanup()
		log.Info().Str("path", cfg.pidPath).Bool("lock", cfg.pidLock).Msg("PID file created")
	}

	// 1. Archive (optional)
	var store *storage.Store
	if cfg.storagePath != "" {
		log.Info().Str("path", cfg.storagePath).Msg("initializing game archive")
		store, err = storage.NewStore(cfg.storagePath, cfg.dev)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize storage")
		}
		if err := store.InitDB(); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize schema")
		}
	} else {
		log.Info().Msg("game archive disabled (use -storage-path to enable)")
	}

	// 2. Seat token secret
	var secret []byte
	switch {
	case cfg.secret != "":
		secret = []byte(cfg.secret)
	case cfg.dev:
		// Fixed secret in dev mode so tokens survive restarts
		secret = []byte("dev-secret-minimum-32-characters-long")
		log.Warn().Msg("using fixed seat token secret (dev mode)")
	default:
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal().Err(err).Msg("failed to generate seat token secret")
		}
		log.Info().Msg("seat token secret generated (tokens valid until restart)")
	}

	// 3. Service, processor, HTTP app
	svc := service.New(store, secret)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval)

	proc := processor.New(svc)
	app := http.NewFiberApp(proc, svc, http.Config{
		DevMode:        cfg.dev,
		RateLimit:      cfg.rateLimit,
		TrustedProxies: cfg.trustedProxies,
	})

	apiAddr := fmt.Sprintf("%s:%d", cfg.apiHost, cfg.apiPort)

	go func() {
		log.Info().
			Str("addr", "http://"+apiAddr).
			Str("games", fmt.Sprintf("http://%s/api/v1/games", apiAddr)).
			Str("health", fmt.Sprintf("http://%s/health", apiAddr)).
			Bool("dev", cfg.dev).
			Bool("archive", store != nil).
			Msg("checkers API server starting")

		if err := app.Listen(apiAddr); err != nil {
			log.Error().Err(err).Msg("API server listen error")
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	// Release long-pollers first so the HTTP server can drain
	cleanupCancel()
	if err = svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("service shutdown error")
	}

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
