package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// HTTPClient implements DataSource by calling the liftlog REST API. Used
// for remote MCP mode where the binary runs locally (stdio) but the data
// lives on a running server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("httpclient: read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// ListRecords fetches all records via GET /workouts/.
func (c *HTTPClient) ListRecords(ctx context.Context) ([]models.StoredRecord, error) {
	body, status, err := c.get(ctx, "/workouts/")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("httpclient: /workouts/ returned %d: %s", status, body)
	}

	var records []models.StoredRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return records, nil
}

// GetRecord fetches a single record via GET /workouts/{id}. A 404 maps to
// storage.ErrNotFound so local and remote modes agree.
func (c *HTTPClient) GetRecord(ctx context.Context, id int64) (*models.StoredRecord, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/workouts/%d", id))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, storage.ErrNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("httpclient: /workouts/%d returned %d: %s", id, status, body)
	}

	var record models.StoredRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("httpclient: decode record: %w", err)
	}
	return &record, nil
}
