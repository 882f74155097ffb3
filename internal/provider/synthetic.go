package provider

import (
	"context"
	"fmt"
	"time"

	"newspump/internal/model"
)

// SyntheticProvider emits a small batch of clearly-labeled placeholder items
// with descending recent timestamps. Used only when explicitly enabled, to
// validate the pipeline when every real source is down.
type SyntheticProvider struct {
	count int
}

func NewSyntheticProvider(count int) *SyntheticProvider {
	if count < 1 {
		count = 1
	}
	if count > 3 {
		count = 3
	}
	return &SyntheticProvider{count: count}
}

func (p *SyntheticProvider) Descriptor() model.ProviderDescriptor {
	return model.ProviderDescriptor{Key: "MOCK", Name: "mock", SourceLabel: "MOCK"}
}

func (p *SyntheticProvider) Fetch(ctx context.Context) ([]model.RawRow, error) {
	now := time.Now().UnixMilli()

	rows := make([]model.RawRow, 0, p.count)
	for i := 0; i < p.count; i++ {
		rows = append(rows, model.RawRow{
			"title":   fmt.Sprintf("[MOCK] News %d for dev pipeline", i+1),
			"content": "Mock news generated for fallback validation.",
			"source":  "MOCK",
			"time":    now - int64(i)*60_000,
		})
	}

	return rows, nil
}
