package model

// RawRow is one provider row before normalization. Keys are whatever the
// upstream source uses, including Chinese field names from CN providers.
type RawRow map[string]any

// NewsItem is the canonical unit of delivery. Field names are fixed by the
// downstream ingestion endpoint.
type NewsItem struct {
	Symbol         string  `json:"symbol"`
	Title          string  `json:"title"`
	Content        string  `json:"content,omitempty"`
	URL            string  `json:"url,omitempty"`
	Source         string  `json:"source"`
	PublishedAt    int64   `json:"publishedAt"`
	SentimentScore float64 `json:"sentimentScore"`
	Confidence     float64 `json:"confidence"`
	IsMock         bool    `json:"isMock,omitempty"`
}

// CursorKey identifies one dedup watermark: the highest publishedAt already
// confirmed delivered for a (symbol, provider) pair.
type CursorKey struct {
	Symbol   string
	Provider string
}

// String renders the wire form used by the cursor endpoint.
func (k CursorKey) String() string {
	return k.Symbol + "|" + k.Provider
}

// ProviderDescriptor is the static identity of one news source. The order of
// the descriptor slice built at startup is the fallback priority.
type ProviderDescriptor struct {
	Key         string
	Name        string
	SourceLabel string
}
