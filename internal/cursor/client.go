package cursor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"newspump/internal/model"
)

// Client talks to the remote cursor store holding the last delivered
// timestamp per (symbol, provider) key.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type cursorValue struct {
	LastTs int64 `json:"lastTs"`
}

type cursorUpdate struct {
	Key    string `json:"key"`
	LastTs int64  `json:"lastTs"`
}

// Get returns the watermark for key, or 0 on any transport, auth or decode
// failure. A missing cursor and a zero cursor are deliberately the same
// thing: both mean "nothing newer than epoch 0 has been delivered".
func (c *Client) Get(ctx context.Context, key model.CursorKey) int64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?key="+url.QueryEscape(key.String()), nil)
	if err != nil {
		return 0
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("cursor get failed", "key", key.String(), "error", err)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}

	var v cursorValue
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return 0
	}
	return v.LastTs
}

// Set advances the watermark for key. With no API key configured the write
// is skipped entirely (degraded no-dedup mode). A reachable store that
// rejects the write is a loud error: silently losing an advance means
// duplicate delivery on the next cycle.
func (c *Client) Set(ctx context.Context, key model.CursorKey, lastTs int64) error {
	if c.apiKey == "" {
		slog.Info("no API key configured, skipping cursor update", "key", key.String())
		return nil
	}

	body, err := json.Marshal(cursorUpdate{Key: key.String(), LastTs: lastTs})
	if err != nil {
		return fmt.Errorf("cursor marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("cursor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cursor update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cursor update failed: HTTP %d: %s", resp.StatusCode, msg)
	}
	return nil
}
