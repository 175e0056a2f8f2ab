// FILE: logrelay/src/internal/service/stats.go
package service

import (
	"sync/atomic"
	"time"
)

// Stats holds pipeline counters, updated by the loops and read at any time
type Stats struct {
	StartTime time.Time

	LinesRead       atomic.Uint64
	LinesAccepted   atomic.Uint64
	LinesSuppressed atomic.Uint64

	MessagesSent      atomic.Uint64
	MessagesFailed    atomic.Uint64
	MessagesThrottled atomic.Uint64
	MessagesAbandoned atomic.Uint64

	lastAccepted  atomic.Value // time.Time
	lastDelivered atomic.Value // time.Time
}

func NewStats() *Stats {
	s := &Stats{StartTime: time.Now()}
	s.lastAccepted.Store(time.Time{})
	s.lastDelivered.Store(time.Time{})
	return s
}

// Snapshot returns the counters as a map suitable for logging and JSON
func (s *Stats) Snapshot() map[string]any {
	lastAccepted, _ := s.lastAccepted.Load().(time.Time)
	lastDelivered, _ := s.lastDelivered.Load().(time.Time)

	return map[string]any{
		"uptime_seconds":     int64(time.Since(s.StartTime).Seconds()),
		"lines_read":         s.LinesRead.Load(),
		"lines_accepted":     s.LinesAccepted.Load(),
		"lines_suppressed":   s.LinesSuppressed.Load(),
		"messages_sent":      s.MessagesSent.Load(),
		"messages_failed":    s.MessagesFailed.Load(),
		"messages_throttled": s.MessagesThrottled.Load(),
		"messages_abandoned": s.MessagesAbandoned.Load(),
		"last_accepted":      formatTime(lastAccepted),
		"last_delivered":     formatTime(lastDelivered),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
