package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"newspump/internal/model"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageProvider pulls the NEWS_SENTIMENT feed. Timestamps arrive in
// AlphaVantage's compact 20060102T150405 form and are converted to epoch ms
// here so the normalizer sees a plain number.
type AlphaVantageProvider struct {
	apiKey     string
	baseURL    string
	limit      int
	httpClient *http.Client
}

func NewAlphaVantageProvider(apiKey string, limit int) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:     apiKey,
		baseURL:    alphaVantageBaseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: 12 * time.Second},
	}
}

func (p *AlphaVantageProvider) Descriptor() model.ProviderDescriptor {
	return model.ProviderDescriptor{Key: "AV", Name: "alphavantage", SourceLabel: "AlphaVantage"}
}

func (p *AlphaVantageProvider) Fetch(ctx context.Context) ([]model.RawRow, error) {
	url := fmt.Sprintf(
		"%s?function=NEWS_SENTIMENT&limit=%d&sort=LATEST&apikey=%s",
		p.baseURL, p.limit, p.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage status %d", resp.StatusCode)
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if len(raw.Feed) == 0 {
		return nil, fmt.Errorf("alphavantage returned no rows")
	}

	rows := make([]model.RawRow, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		row := model.RawRow{
			"title":   item.Title,
			"summary": item.Summary,
			"url":     item.URL,
			"source":  item.Source,
		}
		if publishedAt, err := time.Parse("20060102T150405", item.TimePublished); err == nil {
			row["time"] = publishedAt.UnixMilli()
		}
		rows = append(rows, row)
	}

	return rows, nil
}

type avResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
