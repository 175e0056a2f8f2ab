// FILE: logrelay/src/internal/service/ingest.go
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"logrelay/src/internal/core"
	"logrelay/src/internal/filter"
	"logrelay/src/internal/queue"
	"logrelay/src/internal/source"

	"github.com/lixenwraith/log"
)

// Ingester reads one log stream, filters each record and queues accepted lines
type Ingester struct {
	source     source.LogSource
	identifier string
	lookback   time.Duration
	filter     *filter.Filter
	queue      *queue.Queue[core.OutboundMessage]
	stats      *Stats
	logger     *log.Logger
}

func NewIngester(src source.LogSource, identifier string, lookback time.Duration, f *filter.Filter,
	q *queue.Queue[core.OutboundMessage], stats *Stats, logger *log.Logger) *Ingester {
	return &Ingester{
		source:     src,
		identifier: identifier,
		lookback:   lookback,
		filter:     f,
		queue:      q,
		stats:      stats,
		logger:     logger,
	}
}

// Run reads until the stream ends or ctx is cancelled.
// Source failures are logged here and never returned.
func (i *Ingester) Run(ctx context.Context) error {
	since := time.Now().Add(-i.lookback)

	stream, err := i.source.Open(ctx, i.identifier, since)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		i.logger.Error("msg", "Log source unavailable",
			"component", "ingester",
			"source", i.identifier,
			"not_found", errors.Is(err, source.ErrNotFound),
			"error", err)
		return nil
	}
	defer stream.Close()

	i.logger.Info("msg", "Ingestion started",
		"component", "ingester",
		"source", i.identifier,
		"filter", i.filter.Mode().String())

	for {
		raw, err := stream.Next(ctx)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				i.logger.Debug("msg", "Ingestion cancelled",
					"component", "ingester",
					"source", i.identifier)
			case errors.Is(err, io.EOF):
				i.logger.Info("msg", "Log stream ended",
					"component", "ingester",
					"source", i.identifier)
			default:
				i.logger.Warn("msg", "Log stream read failed",
					"component", "ingester",
					"source", i.identifier,
					"error", err)
			}
			return nil
		}
		i.stats.LinesRead.Add(1)

		text, ok := i.filter.Apply(raw)
		if !ok {
			i.stats.LinesSuppressed.Add(1)
			continue
		}

		msg := core.OutboundMessage{
			Time:   time.Now(),
			Source: i.identifier,
			Text:   text,
		}
		if err := i.queue.Put(ctx, msg); err != nil {
			// Cancelled while the queue was full, the record is lost
			i.logger.Debug("msg", "Dropped line on shutdown",
				"component", "ingester",
				"source", i.identifier,
				"error", err)
			return nil
		}
		i.stats.LinesAccepted.Add(1)
		i.stats.lastAccepted.Store(msg.Time)
	}
}
