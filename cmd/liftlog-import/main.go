package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logPath := flag.String("path", "", "path to workout log text file (required)")
	stateDir := flag.String("state-dir", "", "directory for the import state db (default: ~/.liftlog)")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without inserting into database")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *logPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -path workout.txt [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*logPath)
	if err != nil || info.IsDir() {
		log.Error("log file does not exist or is a directory", "path", *logPath)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	}

	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	dir := *stateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(home, ".liftlog")
	}
	state, err := importer.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state db", "dir", dir, "error", err)
		os.Exit(1)
	}
	defer state.Close()

	imp := importer.New(db, state, log, *dryRun)
	stats, err := imp.Import(ctx, *logPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"run_id", stats.RunID,
		"file_skipped", stats.FileSkipped,
		"records_parsed", stats.RecordsParsed,
		"records_inserted", stats.RecordsInserted,
	)
}
