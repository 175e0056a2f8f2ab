// FILE: logrelay/src/cmd/logrelay/status.go
package main

import (
	"context"
	"time"

	"logrelay/src/internal/status"
)

// Periodically logs pipeline status
func statusReporter(ctx context.Context, reporter status.Reporter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Safely get stats with recovery
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("msg", "Panic in status reporter",
							"component", "status_reporter",
							"panic", r)
					}
				}()
				logPipelineStatus(reporter.GetStats())
			}()
		}
	}
}

// Logs one status line built from the stats fields that are present
func logPipelineStatus(stats map[string]any) {
	fields := []any{
		"msg", "Pipeline status",
		"component", "status_reporter",
	}

	for _, key := range []string{
		"state",
		"source",
		"sink",
		"lines_read",
		"lines_accepted",
		"lines_suppressed",
		"messages_sent",
		"messages_failed",
		"messages_throttled",
		"queue_length",
		"uptime_seconds",
	} {
		if v, ok := stats[key]; ok {
			fields = append(fields, key, v)
		}
	}

	logger.Info(fields...)
}
