package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/ingest/textlog"
	"github.com/claude/liftlog/internal/storage"
)

// Stats tracks one import run.
type Stats struct {
	RunID           uuid.UUID
	FileSkipped     bool
	RecordsParsed   int
	RecordsInserted int64
}

// Importer reads a workout text log and inserts its records, tracking
// completed files in a local state database so re-runs are cheap no-ops.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	parser *textlog.Parser
	log    *slog.Logger
	dryRun bool
}

// New creates an Importer. state may be nil (e.g. dry runs), in which case
// no skip bookkeeping happens.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{
		db:     db,
		state:  state,
		parser: textlog.NewParser(log),
		log:    log,
		dryRun: dryRun,
	}
}

// Import parses the log file at path and batch-inserts its records. The
// insert is all-or-nothing; only a fully inserted file is marked in the
// state database. Every non-skipped, non-dry run gets an import_logs row.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	stats := &Stats{RunID: uuid.New()}

	info, err := os.Stat(path)
	if err != nil {
		return stats, fmt.Errorf("stat %s: %w", path, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return stats, fmt.Errorf("hashing %s: %w", path, err)
	}

	if imp.state != nil {
		imported, err := imp.state.IsImported(path, info.Size(), hash)
		if err != nil {
			return stats, fmt.Errorf("checking state db: %w", err)
		}
		if imported {
			imp.log.Info("file already imported, skipping", "path", path)
			stats.FileSkipped = true
			return stats, nil
		}
	}

	records := imp.parser.ParseFile(path)
	stats.RecordsParsed = len(records)
	if len(records) == 0 {
		imp.log.Warn("no records parsed from file", "path", path)
		return stats, nil
	}

	if imp.dryRun {
		imp.log.Info("dry run: skipping insert", "records_parsed", len(records))
		return stats, nil
	}

	start := time.Now()
	logID, err := imp.db.InsertImportLog(ctx, storage.ImportLog{
		RunID:  stats.RunID,
		Source: "file:" + path,
		Status: storage.ImportStatusRunning,
	})
	if err != nil {
		return stats, fmt.Errorf("opening import log: %w", err)
	}

	inserted, insertErr := imp.db.InsertRecords(ctx, records)
	stats.RecordsInserted = inserted

	entry := storage.ImportLog{
		Status:          storage.ImportStatusSuccess,
		RecordsParsed:   stats.RecordsParsed,
		RecordsInserted: inserted,
	}
	durationMs := int(time.Since(start).Milliseconds())
	entry.DurationMs = &durationMs
	if insertErr != nil {
		entry.Status = storage.ImportStatusError
		msg := insertErr.Error()
		entry.ErrorMessage = &msg
	}
	if err := imp.db.UpdateImportLog(ctx, logID, entry); err != nil {
		imp.log.Warn("failed to finalize import log", "run_id", stats.RunID, "error", err)
	}

	if insertErr != nil {
		return stats, fmt.Errorf("inserting records: %w", insertErr)
	}

	if imp.state != nil {
		if err := imp.state.MarkImported(path, info.Size(), hash); err != nil {
			imp.log.Warn("failed to mark file imported", "path", path, "error", err)
		}
	}

	return stats, nil
}
