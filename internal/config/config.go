package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultEndpoint = "http://localhost:3000/api/ashare/external/news"

// Config is the full environment surface of the pump, built once at process
// start and passed by reference into the controller and each client.
type Config struct {
	Endpoint       string
	CursorEndpoint string
	StatusEndpoint string
	APIKey         string
	Symbol         string

	CheckInterval time.Duration // fixed success-sleep override, zero = random 30-60s
	OneShot       bool
	EnableMock    bool
	DisableCursor bool
	DisabledSleep time.Duration

	FeedURLs    []string
	FeedTimeout time.Duration
	FeedMax     int
	Debug       bool

	FinnHubAPIKey      string
	AlphaVantageAPIKey string

	RedisURL    string
	StatsAddr   string
	FrontendURL string
}

// FromEnv reads the whole configuration surface. Every field has a usable
// default so a bare process still runs against localhost.
func FromEnv() *Config {
	endpoint := getenvOr("NEWS_INGEST_ENDPOINT", "")
	if endpoint == "" {
		endpoint = getenvOr("NEXTJS_API_URL", defaultEndpoint)
	}

	cfg := &Config{
		Endpoint:       endpoint,
		CursorEndpoint: getenvOr("NEWS_CURSOR_ENDPOINT", deriveCursorEndpoint(endpoint)),
		StatusEndpoint: getenvOr("NEWS_INGEST_STATUS_ENDPOINT", deriveStatusEndpoint(endpoint)),
		APIKey:         os.Getenv("NEWS_INGEST_API_KEY"),
		Symbol:         getenvOr("SYMBOL", "GLOBAL"),

		CheckInterval: secondsEnv("CHECK_INTERVAL", 0),
		OneShot:       os.Getenv("NEWS_PUMP_ONESHOT") == "1",
		EnableMock:    os.Getenv("NEWS_PUMP_ENABLE_MOCK") == "1",
		DisableCursor: os.Getenv("NEWS_PUMP_DISABLE_CURSOR") == "1",
		DisabledSleep: secondsEnv("NEWS_INGEST_DISABLED_SLEEP_SEC", 30*time.Second),

		FeedURLs:    splitList(os.Getenv("RSS_URLS")),
		FeedTimeout: secondsEnv("RSS_TIMEOUT_SEC", 15*time.Second),
		FeedMax:     intEnv("RSS_MAX_ITEMS", 50),
		Debug:       os.Getenv("RSS_DEBUG") == "1",

		FinnHubAPIKey:      os.Getenv("FINNHUB_API_KEY"),
		AlphaVantageAPIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),

		RedisURL:    os.Getenv("REDIS_URL"),
		StatsAddr:   os.Getenv("PUMP_STATS_ADDR"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	return cfg
}

func deriveCursorEndpoint(endpoint string) string {
	if strings.HasSuffix(endpoint, "/external/news") {
		return strings.Replace(endpoint, "/external/news", "/external/news_cursor", 1)
	}
	return strings.TrimRight(endpoint, "/") + "_cursor"
}

func deriveStatusEndpoint(endpoint string) string {
	if idx := strings.Index(endpoint, "/api/ashare/external/news"); idx >= 0 {
		return endpoint[:idx] + "/api/system/news-ingest/status"
	}
	return strings.TrimRight(endpoint, "/") + "/api/system/news-ingest/status"
}

func getenvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func secondsEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return time.Duration(f * float64(time.Second))
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
