// FILE: logrelay/src/internal/service/delivery.go
package service

import (
	"context"
	"errors"
	"time"

	"logrelay/src/internal/core"
	"logrelay/src/internal/flow"
	"logrelay/src/internal/queue"
	"logrelay/src/internal/sink"

	"github.com/lixenwraith/log"
)

// Deliverer takes queued messages in order and sends them one at a time
type Deliverer struct {
	queue  *queue.Queue[core.OutboundMessage]
	sink   sink.NotificationSink
	pacer  flow.Pacer
	stats  *Stats
	logger *log.Logger
}

func NewDeliverer(q *queue.Queue[core.OutboundMessage], snk sink.NotificationSink, pacer flow.Pacer,
	stats *Stats, logger *log.Logger) *Deliverer {
	return &Deliverer{
		queue:  q,
		sink:   snk,
		pacer:  pacer,
		stats:  stats,
		logger: logger,
	}
}

// Run delivers until the queue is closed and empty or ctx is cancelled.
// Delivery failures are logged and the message dropped.
func (d *Deliverer) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		msg, err := d.queue.Get(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrClosed) {
				d.logger.Debug("msg", "Queue closed and empty",
					"component", "deliverer",
					"sink", d.sink.Name())
			}
			return nil
		}

		d.handle(ctx, msg)
	}
}

func (d *Deliverer) handle(ctx context.Context, msg core.OutboundMessage) {
	defer d.queue.Done()

	if err := d.pacer.Wait(ctx); err != nil {
		d.stats.MessagesAbandoned.Add(1)
		return
	}

	err := d.sink.Send(ctx, msg)
	if err == nil {
		d.stats.MessagesSent.Add(1)
		d.stats.lastDelivered.Store(time.Now())
		return
	}

	d.stats.MessagesFailed.Add(1)

	var rateErr *sink.RateLimitError
	if errors.As(err, &rateErr) {
		d.stats.MessagesThrottled.Add(1)
		d.pacer.Backoff(rateErr.RetryAfter)
		d.logger.Warn("msg", "Message dropped, sink rate limited",
			"component", "deliverer",
			"sink", d.sink.Name(),
			"source", msg.Source,
			"retry_after", rateErr.RetryAfter.String(),
			"error", err)
		return
	}

	d.logger.Error("msg", "Message delivery failed",
		"component", "deliverer",
		"sink", d.sink.Name(),
		"source", msg.Source,
		"error", err)
}
