// Command seed loads the reference data (countries, universities, programs,
// scholarships, email templates, tips, CV templates, categories and guides)
// into the database.
//
// Usage:
//
//	seed                         # load the fixtures built into the binary
//	seed -file fixtures.json     # load a fixture document from disk
//	seed -db data/other.db       # override DB_PATH
//
// Seeding is an upsert on natural keys, so it is safe to rerun after editing
// the fixtures. Guide view and helpful counters survive a reseed.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sakif/applyhelp/internal/config"
	"github.com/sakif/applyhelp/internal/logging"
	sqliteRepo "github.com/sakif/applyhelp/internal/repository/sqlite"
	"github.com/sakif/applyhelp/internal/seed"
)

func main() {
	file := flag.String("file", "", "fixture document (defaults to the built-in fixtures)")
	dbPath := flag.String("db", "", "database path (defaults to DB_PATH)")
	flag.Parse()

	cfg, err := config.LoadForTools()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger, closeLog, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to set up logging", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLog.Close()

	if err := run(logger, cfg.DBPath, *file); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		closeLog.Close()
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dbPath, file string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src io.Reader = bytes.NewReader(seed.Default)
	source := "built-in"
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		src, source = f, file
	}

	fixtures, err := seed.Parse(src)
	if err != nil {
		return err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return err
		}
	}
	db, err := sqliteRepo.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sum, err := seed.Load(ctx, seed.FromDB(db), fixtures)
	if err != nil {
		return err
	}

	logger.Info("seeding complete",
		slog.String("fixtures", source),
		slog.String("db", dbPath),
		slog.Int("countries", sum.Countries),
		slog.Int("universities", sum.Universities),
		slog.Int("programs", sum.Programs),
		slog.Int("scholarships", sum.Scholarships),
		slog.Int("email_templates", sum.Templates),
		slog.Int("tips", sum.Tips),
		slog.Int("cv_templates", sum.CVTemplates),
		slog.Int("categories", sum.Categories),
		slog.Int("guides", sum.Guides),
	)
	return nil
}
