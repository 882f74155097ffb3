package config

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "http://localhost:3000/api/ashare/external/news", cfg.Endpoint)
	assert.Equal(t, "http://localhost:3000/api/ashare/external/news_cursor", cfg.CursorEndpoint)
	assert.Equal(t, "http://localhost:3000/api/system/news-ingest/status", cfg.StatusEndpoint)
	assert.Equal(t, "GLOBAL", cfg.Symbol)
	assert.Equal(t, time.Duration(0), cfg.CheckInterval)
	assert.Equal(t, 30*time.Second, cfg.DisabledSleep)
	assert.Equal(t, 15*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 50, cfg.FeedMax)
	assert.Equal(t, false, cfg.OneShot)
	assert.Equal(t, false, cfg.EnableMock)
	assert.Equal(t, 0, len(cfg.FeedURLs))
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_INGEST_ENDPOINT", "https://prod.example.com/api/ashare/external/news")
	t.Setenv("NEWS_INGEST_API_KEY", "secret")
	t.Setenv("SYMBOL", "600519")
	t.Setenv("CHECK_INTERVAL", "45")
	t.Setenv("NEWS_PUMP_ONESHOT", "1")
	t.Setenv("NEWS_PUMP_ENABLE_MOCK", "1")
	t.Setenv("NEWS_PUMP_DISABLE_CURSOR", "1")
	t.Setenv("RSS_URLS", "https://a.example.com/rss, https://b.example.com/rss,")
	t.Setenv("RSS_TIMEOUT_SEC", "8")
	t.Setenv("RSS_MAX_ITEMS", "10")

	cfg := FromEnv()

	assert.Equal(t, "https://prod.example.com/api/ashare/external/news", cfg.Endpoint)
	assert.Equal(t, "https://prod.example.com/api/ashare/external/news_cursor", cfg.CursorEndpoint)
	assert.Equal(t, "https://prod.example.com/api/system/news-ingest/status", cfg.StatusEndpoint)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "600519", cfg.Symbol)
	assert.Equal(t, 45*time.Second, cfg.CheckInterval)
	assert.Equal(t, true, cfg.OneShot)
	assert.Equal(t, true, cfg.EnableMock)
	assert.Equal(t, true, cfg.DisableCursor)
	assert.Equal(t, []string{"https://a.example.com/rss", "https://b.example.com/rss"}, cfg.FeedURLs)
	assert.Equal(t, 8*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 10, cfg.FeedMax)
}

func TestExplicitEndpointOverridesDerivation(t *testing.T) {
	t.Setenv("NEWS_CURSOR_ENDPOINT", "https://other.example.com/cursor")
	t.Setenv("NEWS_INGEST_STATUS_ENDPOINT", "https://other.example.com/status")

	cfg := FromEnv()

	assert.Equal(t, "https://other.example.com/cursor", cfg.CursorEndpoint)
	assert.Equal(t, "https://other.example.com/status", cfg.StatusEndpoint)
}
