package dedup

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	seenKeyPrefix = "newspump:seen:"
	seenTTL       = 24 * time.Hour
)

// SeenStore is an optional Redis-backed cache of recently delivered article
// URLs. It only saves delivery round-trips the downstream would reject as
// duplicates anyway, so every Redis failure degrades to "not seen". A nil
// *SeenStore is valid and always misses.
type SeenStore struct {
	client *redis.Client
}

// Connect builds a SeenStore from a Redis URL, accepting either a full
// redis:// URL or a bare host:port address.
func Connect(redisURL string) (*SeenStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &SeenStore{client: client}, nil
}

func (s *SeenStore) Close() {
	if s != nil && s.client != nil {
		s.client.Close()
	}
}

// Seen reports whether the URL was recently delivered.
func (s *SeenStore) Seen(ctx context.Context, url string) bool {
	if s == nil || url == "" {
		return false
	}

	n, err := s.client.Exists(ctx, seenKey(url)).Result()
	if err != nil {
		slog.Debug("seen cache unavailable", "error", err)
		return false
	}
	return n > 0
}

// Mark records a URL the downstream has confirmed it holds, either as a
// fresh insert or as a duplicate.
func (s *SeenStore) Mark(ctx context.Context, url string) {
	if s == nil || url == "" {
		return
	}
	if err := s.client.Set(ctx, seenKey(url), 1, seenTTL).Err(); err != nil {
		slog.Debug("seen cache write failed", "error", err)
	}
}

func seenKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return seenKeyPrefix + fmt.Sprintf("%x", sum)[:16]
}
