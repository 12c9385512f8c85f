package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftlog/internal/models"
)

var resRecentRecords = mcp.NewResource(
	"liftlog://recent_records",
	"Recent Records",
	mcp.WithResourceDescription("The 50 most recent workout records, newest date first"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) recentRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.ds.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > 50 {
		records = records[:50]
	}
	if records == nil {
		records = []models.StoredRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
