package textlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/storage"
)

// Provider ingests text-log content into the records table, writing an
// import_logs row per run.
type Provider struct {
	db     *storage.DB
	parser *Parser
	log    *slog.Logger
}

// NewProvider creates a text-log ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, parser: NewParser(log), log: log}
}

// Ingest parses the log content from r and batch-inserts the resulting
// records. The batch is all-or-nothing; a failed insert is recorded on the
// import log entry and returned.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	runID := uuid.New()
	start := time.Now()

	logID, err := p.db.InsertImportLog(ctx, storage.ImportLog{
		RunID:  runID,
		Source: "textlog",
		Status: storage.ImportStatusRunning,
	})
	if err != nil {
		return nil, fmt.Errorf("opening import log: %w", err)
	}

	records := p.parser.Parse(r)
	result := &ingest.Result{RecordsParsed: len(records)}

	inserted, insertErr := p.db.InsertRecords(ctx, records)
	result.RecordsInserted = inserted

	entry := storage.ImportLog{
		Status:          storage.ImportStatusSuccess,
		RecordsParsed:   result.RecordsParsed,
		RecordsInserted: inserted,
	}
	durationMs := int(time.Since(start).Milliseconds())
	entry.DurationMs = &durationMs
	if insertErr != nil {
		entry.Status = storage.ImportStatusError
		msg := insertErr.Error()
		entry.ErrorMessage = &msg
	}
	if err := p.db.UpdateImportLog(ctx, logID, entry); err != nil {
		p.log.Warn("failed to finalize import log", "run_id", runID, "error", err)
	}

	if insertErr != nil {
		return nil, fmt.Errorf("inserting records: %w", insertErr)
	}

	if len(records) == 0 {
		result.Message = "no records found in input"
	}
	p.log.Info("text log ingested",
		"run_id", runID,
		"records_parsed", result.RecordsParsed,
		"records_inserted", result.RecordsInserted,
	)
	return result, nil
}
