package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"newspump/internal/model"
	"newspump/internal/normalize"
	"newspump/pkg/timeparse"
)

// DefaultFeedURLs are CN-friendly finance feeds plus the usual global
// business wires. Override with RSS_URLS.
var DefaultFeedURLs = []string{
	"https://36kr.com/feed",
	"http://www.huxiu.com/rss/0.xml",

	// RSSHub mirrors (public rsshub.app is often 403 in CN)
	"https://rsshub.rssforever.com/cls/telegraph",
	"https://rsshub.rssforever.com/36kr/newsflashes",

	// Third-party proxy RSS
	"https://rss.aishort.top/?type=36kr",
	"https://rss.aishort.top/?type=huxiu",

	// Global finance/news
	"https://feeds.reuters.com/reuters/businessNews",
	"https://feeds.reuters.com/reuters/marketsNews",
	"https://feeds.a.dj.com/rss/RSSMarketsMain.xml",
	"https://www.cnbc.com/id/100003114/device/rss/rss.html",
	"https://www.ft.com/?format=rss",
	"https://feeds.marketwatch.com/marketwatch/topstories/",
	"https://finance.yahoo.com/news/rssindex",
}

const feedUserAgent = "OpenStock-NewsPump/1.0"

// FeedProvider aggregates a list of RSS/Atom feeds. One bad feed never
// blocks the others; the aggregate is sorted newest-first and capped.
type FeedProvider struct {
	urls       []string
	maxItems   int
	httpClient *http.Client
	parser     *gofeed.Parser
}

func NewFeedProvider(urls []string, timeout time.Duration, maxItems int) *FeedProvider {
	if len(urls) == 0 {
		urls = DefaultFeedURLs
	}
	if maxItems <= 0 {
		maxItems = 50
	}
	return &FeedProvider{
		urls:       urls,
		maxItems:   maxItems,
		httpClient: &http.Client{Timeout: timeout},
		parser:     gofeed.NewParser(),
	}
}

func (p *FeedProvider) Descriptor() model.ProviderDescriptor {
	return model.ProviderDescriptor{Key: "RSS", Name: "rss", SourceLabel: "RSS"}
}

func (p *FeedProvider) Fetch(ctx context.Context) ([]model.RawRow, error) {
	var rows []model.RawRow

	for _, url := range p.urls {
		feedRows, err := p.fetchOne(ctx, url)
		if err != nil {
			slog.Debug("feed fetch failed", "url", url, "error", err)
			continue
		}
		rows = append(rows, feedRows...)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no feed returned items")
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i]["time"].(int64) > rows[j]["time"].(int64)
	})
	if len(rows) > p.maxItems {
		rows = rows[:p.maxItems]
	}

	return rows, nil
}

func (p *FeedProvider) fetchOne(ctx context.Context, url string) ([]model.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}

	// gofeed handles both RSS <item> and Atom <entry> shapes.
	feed, err := p.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed parse: %w", err)
	}

	feedTitle := normalize.StripMarkup(feed.Title)
	source := feedTitle
	if source == "" {
		source = "RSS"
	}

	rows := make([]model.RawRow, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Title == "" {
			continue
		}

		body := entry.Description
		if body == "" {
			body = entry.Content
		}

		var publishedAt int64
		switch {
		case entry.PublishedParsed != nil:
			publishedAt = entry.PublishedParsed.UnixMilli()
		case entry.UpdatedParsed != nil:
			publishedAt = entry.UpdatedParsed.UnixMilli()
		default:
			publishedAt = timeparse.Millis(entry.Published)
		}

		rows = append(rows, model.RawRow{
			"title":    entry.Title,
			"content":  normalize.StripMarkup(body),
			"url":      entry.Link,
			"source":   source,
			"time":     publishedAt,
			"feedId":   url,
			"feedName": feedTitle,
		})
	}

	return rows, nil
}
