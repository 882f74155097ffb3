package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newspump/internal/model"
)

// Receipt is the downstream verdict for one delivered item. Only
// OK && Status == "inserted" counts as a confirmed insertion; anything else
// (typically a duplicate) must neither advance the cursor nor be retried.
type Receipt struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// Inserted reports whether the item was newly stored downstream.
func (r Receipt) Inserted() bool {
	return r.OK && r.Status == "inserted"
}

// Client posts canonical news items to the ingestion endpoint and polls the
// administrative ingestion-enabled flag.
type Client struct {
	endpoint       string
	statusEndpoint string
	apiKey         string
	httpClient     *http.Client
	statusClient   *http.Client
}

func NewClient(endpoint, statusEndpoint, apiKey string) *Client {
	return &Client{
		endpoint:       endpoint,
		statusEndpoint: statusEndpoint,
		apiKey:         apiKey,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		statusClient:   &http.Client{Timeout: 8 * time.Second},
	}
}

// PostNews delivers one item. Any non-2xx response is a hard failure for
// that item; the caller's batch loop is expected to continue with the rest.
func (c *Client) PostNews(ctx context.Context, item *model.NewsItem) (Receipt, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return Receipt{}, fmt.Errorf("ingest marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("ingest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("ingest post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Receipt{}, fmt.Errorf("ingest rejected: HTTP %d: %s", resp.StatusCode, msg)
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return Receipt{}, fmt.Errorf("ingest decode: %w", err)
	}
	return receipt, nil
}

type statusResponse struct {
	Enabled *bool `json:"enabled"`
}

// Enabled polls the ingestion-enabled flag. Fail-open: any transport error,
// non-200 or missing field reads as enabled, so a flaky monitoring endpoint
// never starves ingestion.
func (c *Client) Enabled(ctx context.Context) bool {
	if c.statusEndpoint == "" {
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusEndpoint, nil)
	if err != nil {
		return true
	}

	resp, err := c.statusClient.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return true
	}
	if status.Enabled == nil {
		return true
	}
	return *status.Enabled
}
