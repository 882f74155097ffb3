package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestAlphaVantageFetch(t *testing.T) {
	payload := map[string]interface{}{
		"feed": []map[string]interface{}{
			{
				"title":          "Fed Holds Rates Steady",
				"summary":        "The Federal Reserve kept interest rates unchanged.",
				"url":            "https://example.com/fed-rates",
				"source":         "Reuters",
				"time_published": "20260226T120000",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	p := NewAlphaVantageProvider("test-key", 50)
	p.baseURL = srv.URL

	rows, err := p.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(rows))

	row := rows[0]
	assert.Equal(t, "Fed Holds Rates Steady", row["title"])
	assert.Equal(t, "The Federal Reserve kept interest rates unchanged.", row["summary"])
	assert.Equal(t, "https://example.com/fed-rates", row["url"])
	assert.Equal(t, "Reuters", row["source"])

	want := time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, row["time"])
}

func TestAlphaVantageEmptyFeedIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feed": []}`))
	}))
	defer srv.Close()

	p := NewAlphaVantageProvider("test-key", 50)
	p.baseURL = srv.URL

	_, err := p.Fetch(context.Background())
	assert.NotEqual(t, nil, err)
}

func TestAlphaVantageNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewAlphaVantageProvider("test-key", 50)
	p.baseURL = srv.URL

	_, err := p.Fetch(context.Background())
	assert.NotEqual(t, nil, err)
}

func TestSyntheticFetch(t *testing.T) {
	p := NewSyntheticProvider(3)
	rows, err := p.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(rows))

	assert.Equal(t, "[MOCK] News 1 for dev pipeline", rows[0]["title"])
	assert.Equal(t, "MOCK", rows[0]["source"])

	// Timestamps descend in one-minute steps.
	t0 := rows[0]["time"].(int64)
	t1 := rows[1]["time"].(int64)
	t2 := rows[2]["time"].(int64)
	assert.Equal(t, int64(60_000), t0-t1)
	assert.Equal(t, int64(60_000), t1-t2)
}
