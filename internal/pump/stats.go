package pump

import (
	"sync/atomic"
	"time"
)

// Stats holds the controller's lifetime counters. All fields are updated
// from the pump loop and snapshotted concurrently by the ops handlers.
type Stats struct {
	startedAt time.Time

	cycles     atomic.Int64
	successes  atomic.Int64
	failures   atomic.Int64
	delivered  atomic.Int64
	duplicates atomic.Int64
	suppressed atomic.Int64
	errors     atomic.Int64
}

func NewStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

// Snapshot is the JSON view served by the ops endpoint.
type Snapshot struct {
	UptimeSeconds int64 `json:"uptime_seconds"`
	Cycles        int64 `json:"cycles"`
	Successes     int64 `json:"successes"`
	Failures      int64 `json:"failures"`
	Delivered     int64 `json:"delivered"`
	Duplicates    int64 `json:"duplicates"`
	Suppressed    int64 `json:"suppressed"`
	Errors        int64 `json:"errors"`
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Cycles:        s.cycles.Load(),
		Successes:     s.successes.Load(),
		Failures:      s.failures.Load(),
		Delivered:     s.delivered.Load(),
		Duplicates:    s.duplicates.Load(),
		Suppressed:    s.suppressed.Load(),
		Errors:        s.errors.Load(),
	}
}
