package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"newspump/internal/config"
	"newspump/internal/cursor"
	"newspump/internal/dedup"
	"newspump/internal/handler"
	"newspump/internal/ingest"
	"newspump/internal/provider"
	"newspump/internal/pump"
)

func main() {

	godotenv.Load()

	cfg := config.FromEnv()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	if cfg.APIKey == "" {
		slog.Warn("NEWS_INGEST_API_KEY not set, cursor updates will be skipped")
	}

	var structured []provider.Provider
	if cfg.FinnHubAPIKey != "" {
		structured = append(structured, provider.NewFinnHubProvider(cfg.FinnHubAPIKey, cfg.Symbol))
	}
	if cfg.AlphaVantageAPIKey != "" {
		structured = append(structured, provider.NewAlphaVantageProvider(cfg.AlphaVantageAPIKey, cfg.FeedMax))
	}

	feed := provider.NewFeedProvider(cfg.FeedURLs, cfg.FeedTimeout, cfg.FeedMax)

	var synthetic provider.Provider
	if cfg.EnableMock {
		synthetic = provider.NewSyntheticProvider(3)
	}

	var seen *dedup.SeenStore
	if cfg.RedisURL != "" {
		var err error
		seen, err = dedup.Connect(cfg.RedisURL)
		if err != nil {
			slog.Warn("seen cache unavailable, continuing without it", "error", err)
			seen = nil
		} else {
			defer seen.Close()
		}
	}

	controller := pump.NewController(
		cfg,
		structured,
		feed,
		synthetic,
		cursor.NewClient(cfg.CursorEndpoint, cfg.APIKey),
		ingest.NewClient(cfg.Endpoint, cfg.StatusEndpoint, cfg.APIKey),
		seen,
	)

	if cfg.StatsAddr != "" {
		go runStatsServer(cfg, controller, structured)
	}

	slog.Info("news pump starting",
		"endpoint", cfg.Endpoint,
		"symbol", cfg.Symbol,
		"structured_providers", len(structured),
		"oneshot", cfg.OneShot,
		"mock_enabled", cfg.EnableMock,
	)

	controller.Run(context.Background())
}

func runStatsServer(cfg *config.Config, controller *pump.Controller, structured []provider.Provider) {
	keys := make([]string, 0, len(structured)+1)
	for _, p := range structured {
		keys = append(keys, p.Descriptor().Key)
	}
	keys = append(keys, "RSS")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	h := handler.NewPumpHandler(controller.Stats(), cfg.Symbol, keys, cfg.EnableMock)
	r.GET("/health", h.GetHealth)
	r.GET("/stats", h.GetStats)

	if err := r.Run(cfg.StatsAddr); err != nil {
		slog.Error("stats server stopped", "error", err)
	}
}
