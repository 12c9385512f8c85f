package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// DataSource abstracts the record store for MCP tools. Both *storage.DB
// (local mode) and HTTPClient (remote mode via the REST API) satisfy it.
type DataSource interface {
	ListRecords(ctx context.Context) ([]models.StoredRecord, error)
	GetRecord(ctx context.Context, id int64) (*models.StoredRecord, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
