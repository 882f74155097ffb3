package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"newspump/internal/model"
)

// FinnHubProvider wraps the official FinnHub SDK. For the GLOBAL tag it
// pulls general market news; for a concrete symbol it pulls company news
// from the last two days.
type FinnHubProvider struct {
	client *finnhub.DefaultApiService
	symbol string
}

func NewFinnHubProvider(apiKey, symbol string) *FinnHubProvider {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = &http.Client{Timeout: 12 * time.Second}
	return &FinnHubProvider{
		client: finnhub.NewAPIClient(cfg).DefaultApi,
		symbol: symbol,
	}
}

func (p *FinnHubProvider) Descriptor() model.ProviderDescriptor {
	return model.ProviderDescriptor{Key: "FINNHUB", Name: "finnhub", SourceLabel: "FinnHub"}
}

func (p *FinnHubProvider) Fetch(ctx context.Context) ([]model.RawRow, error) {
	var rows []model.RawRow

	if p.symbol == "" || p.symbol == "GLOBAL" {
		res, _, err := p.client.MarketNews(ctx).Category("general").Execute()
		if err != nil {
			return nil, fmt.Errorf("finnhub fetch: %w", err)
		}
		for _, news := range res {
			rows = append(rows, finnhubRow(news.Headline, news.Summary, news.Url, news.Source, news.Datetime))
		}
	} else {
		to := time.Now()
		from := to.AddDate(0, 0, -2)
		res, _, err := p.client.CompanyNews(ctx).
			Symbol(p.symbol).
			From(from.Format("2006-01-02")).
			To(to.Format("2006-01-02")).
			Execute()
		if err != nil {
			return nil, fmt.Errorf("finnhub fetch: %w", err)
		}
		for _, news := range res {
			rows = append(rows, finnhubRow(news.Headline, news.Summary, news.Url, news.Source, news.Datetime))
		}
	}

	if len(rows) == 0 {
		// This source always has rows; empty means something upstream broke.
		return nil, fmt.Errorf("finnhub returned no rows")
	}

	return rows, nil
}

func finnhubRow(headline, summary, url, source *string, datetime *int64) model.RawRow {
	row := model.RawRow{}
	if headline != nil {
		row["title"] = *headline
	}
	if summary != nil {
		row["summary"] = *summary
	}
	if url != nil {
		row["url"] = *url
	}
	if source != nil {
		row["source"] = *source
	}
	if datetime != nil {
		row["time"] = *datetime * 1000
	}
	return row
}
