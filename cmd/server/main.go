// Package main is the entry point for the applyhelp API server.
//
// MAIN PACKAGE IN GO:
// main should stay minimal. Its job is to:
//  1. Read configuration (internal/config: .env, config file, env vars)
//  2. Create the logger
//  3. Start the server
//
// All actual logic lives in imported packages (internal/server,
// internal/service, ...), which keeps them testable without a process.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/applyhelp/internal/config"
	"github.com/sakif/applyhelp/internal/logging"
	"github.com/sakif/applyhelp/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// Config errors are reported before a logger exists, so they go to
	// stderr through a throwaway text logger.
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger, closeLog, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to set up logging", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLog.Close()
	// Response helpers log through the default logger.
	slog.SetDefault(logger)

	// === 3. DATABASE DIRECTORY ===
	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		closeLog.Close()
		os.Exit(1)
	}
}
