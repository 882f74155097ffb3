package normalize

import (
	"fmt"
	"strings"

	"newspump/internal/model"
	"newspump/pkg/sentiment"
	"newspump/pkg/timeparse"
)

// Accepted field-name aliases per canonical field, in lookup order. CN
// providers emit Chinese column names, everything else some English variant.
var (
	titleKeys     = []string{"新闻标题", "标题", "title", "Title"}
	contentKeys   = []string{"新闻内容", "内容", "摘要", "summary", "Summary", "content"}
	urlKeys       = []string{"新闻链接", "链接", "url", "URL"}
	sourceKeys    = []string{"文章来源", "来源", "source", "Source"}
	publishedKeys = []string{"发布时间", "时间", "publish_time", "publishedAt", "time", "日期", "date", "pubDate"}
)

// PickFirst returns the first present, non-blank value among the candidate
// keys, rendered as a string.
func PickFirst(row model.RawRow, keys []string) string {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(asString(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// PickRaw returns the first present, non-nil value among the candidate keys
// without string conversion, so numeric timestamps survive as numbers.
func PickRaw(row model.RawRow, keys []string) any {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		// Row maps decoded from JSON carry numbers as float64.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Build resolves one raw provider row into a canonical NewsItem. It returns
// false when the row has no usable title or is at/behind the cursor value,
// which suppresses it before any network call is spent on delivery.
func Build(row model.RawRow, symbol, defaultSource string, lastTs int64) (*model.NewsItem, bool) {
	title := PickFirst(row, titleKeys)
	if title == "" {
		return nil, false
	}

	content := PickFirst(row, contentKeys)
	url := PickFirst(row, urlKeys)
	source := PickFirst(row, sourceKeys)
	if source == "" {
		source = defaultSource
	}

	publishedAt := timeparse.Millis(PickRaw(row, publishedKeys))
	if publishedAt <= lastTs {
		return nil, false
	}

	score := sentiment.Score(title + " " + content)
	confidence := 0.2
	if score != 0 {
		confidence = 0.5
	}

	return &model.NewsItem{
		Symbol:         symbol,
		Title:          title,
		Content:        content,
		URL:            url,
		Source:         source,
		PublishedAt:    publishedAt,
		SentimentScore: score,
		Confidence:     confidence,
	}, true
}
