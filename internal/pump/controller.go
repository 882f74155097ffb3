package pump

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"newspump/internal/config"
	"newspump/internal/cursor"
	"newspump/internal/dedup"
	"newspump/internal/ingest"
	"newspump/internal/model"
	"newspump/internal/normalize"
	"newspump/internal/provider"
)

// Randomized success-sleep bounds; a fixed interval here would align every
// pump instance against the same upstreams.
const (
	pollMin = 30 * time.Second
	pollMax = 60 * time.Second
)

var backoffSteps = []time.Duration{
	30 * time.Second,
	60 * time.Second,
	120 * time.Second,
	300 * time.Second,
}

type batchKind int

const (
	structuredBatch batchKind = iota
	feedBatch
	mockBatch
)

// Controller runs the provider-fallback chain: structured providers in
// priority order, then the feed provider, then (when enabled) the synthetic
// provider, each behind its own cursor key.
type Controller struct {
	cfg        *config.Config
	structured []provider.Provider
	feed       provider.Provider
	synthetic  provider.Provider

	cursors *cursor.Client
	client  *ingest.Client
	seen    *dedup.SeenStore
	stats   *Stats

	sleep func(time.Duration)
}

func NewController(
	cfg *config.Config,
	structured []provider.Provider,
	feed provider.Provider,
	synthetic provider.Provider,
	cursors *cursor.Client,
	client *ingest.Client,
	seen *dedup.SeenStore,
) *Controller {
	return &Controller{
		cfg:        cfg,
		structured: structured,
		feed:       feed,
		synthetic:  synthetic,
		cursors:    cursors,
		client:     client,
		seen:       seen,
		stats:      NewStats(),
		sleep:      time.Sleep,
	}
}

func (c *Controller) Stats() *Stats {
	return c.stats
}

// Run loops forever (or for exactly one cycle in one-shot mode), converting
// every failure into a backoff decision. Nothing in here is fatal.
func (c *Controller) Run(ctx context.Context) {
	failCount := 0

	for {
		if ctx.Err() != nil {
			return
		}

		if !c.client.Enabled(ctx) {
			slog.Info("news ingest disabled, sleeping", "seconds", int(c.cfg.DisabledSleep.Seconds()))
			c.sleep(c.cfg.DisabledSleep)
			continue
		}

		ok := c.RunCycle(ctx)
		c.stats.cycles.Add(1)
		if ok {
			c.stats.successes.Add(1)
		} else {
			c.stats.failures.Add(1)
		}

		if c.cfg.OneShot {
			return
		}

		if ok {
			failCount = 0
			c.sleep(c.successInterval())
			continue
		}

		failCount++
		step := backoffSteps[len(backoffSteps)-1]
		if failCount-1 < len(backoffSteps) {
			step = backoffSteps[failCount-1]
		}
		slog.Info("cycle failed, backing off", "fail_count", failCount, "seconds", int(step.Seconds()))
		c.sleep(step)
	}
}

// RunCycle tries each provider tier until one yields a confirmed insertion.
func (c *Controller) RunCycle(ctx context.Context) bool {
	for _, p := range c.structured {
		desc := p.Descriptor()

		rows, err := p.Fetch(ctx)
		if err != nil {
			slog.Warn("provider failed", "provider", desc.Name, "error", err)
			continue
		}

		sent := c.pushRows(ctx, desc, rows, structuredBatch)
		slog.Info("provider batch done", "provider", desc.Name, "sent", sent)
		if sent > 0 {
			return true
		}
	}

	if rows, err := c.feed.Fetch(ctx); err != nil {
		slog.Warn("provider failed", "provider", c.feed.Descriptor().Name, "error", err)
	} else {
		sent := c.pushRows(ctx, c.feed.Descriptor(), rows, feedBatch)
		slog.Info("provider batch done", "provider", "rss", "sent", sent)
		if sent > 0 {
			return true
		}
	}

	if c.synthetic == nil {
		slog.Info("mock fallback disabled")
		return false
	}

	rows, err := c.synthetic.Fetch(ctx)
	if err != nil {
		slog.Warn("provider failed", "provider", "mock", "error", err)
		return false
	}
	sent := c.pushRows(ctx, c.synthetic.Descriptor(), rows, mockBatch)
	slog.Info("provider batch done", "provider", "mock", "sent", sent)
	return sent > 0
}

// pushRows runs one provider batch through normalize, filter, deliver and
// cursor advance. A delivery failure aborts only that item; the rest of the
// batch continues.
func (c *Controller) pushRows(ctx context.Context, desc model.ProviderDescriptor, rows []model.RawRow, kind batchKind) int {
	key := model.CursorKey{Symbol: c.cfg.Symbol, Provider: desc.Key}

	var lastTs int64
	if !c.cfg.DisableCursor {
		lastTs = c.cursors.Get(ctx, key)
	}
	if c.cfg.Debug {
		slog.Debug("cursor loaded", "key", key.String(), "last_ts", lastTs, "rows", len(rows))
	}

	sent := 0
	maxPublished := lastTs

	for _, row := range rows {
		item, ok := normalize.Build(row, c.cfg.Symbol, desc.SourceLabel, lastTs)
		if !ok {
			c.stats.suppressed.Add(1)
			continue
		}

		switch kind {
		case feedBatch:
			item.Confidence = 0.4
		case mockBatch:
			item.Confidence = 0.3
			item.IsMock = true
		}

		if c.seen.Seen(ctx, item.URL) {
			c.stats.duplicates.Add(1)
			continue
		}

		receipt, err := c.client.PostNews(ctx, item)
		if err != nil {
			slog.Warn("delivery failed", "provider", desc.Name, "title", item.Title, "error", err)
			c.stats.errors.Add(1)
			continue
		}

		c.seen.Mark(ctx, item.URL)

		if !receipt.Inserted() {
			c.stats.duplicates.Add(1)
			continue
		}

		sent++
		c.stats.delivered.Add(1)
		if item.PublishedAt > maxPublished {
			maxPublished = item.PublishedAt
		}
	}

	if maxPublished > lastTs {
		if err := c.cursors.Set(ctx, key, maxPublished); err != nil {
			slog.Error("cursor advance failed", "key", key.String(), "error", err)
		}
	}

	return sent
}

func (c *Controller) successInterval() time.Duration {
	if c.cfg.CheckInterval > 0 {
		return c.cfg.CheckInterval
	}
	spread := int64(pollMax-pollMin) + 1
	return pollMin + time.Duration(rand.Int63n(spread))
}
