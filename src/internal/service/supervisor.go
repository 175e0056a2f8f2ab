// FILE: logrelay/src/internal/service/supervisor.go
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"logrelay/src/internal/config"
	"logrelay/src/internal/core"
	"logrelay/src/internal/filter"
	"logrelay/src/internal/flow"
	"logrelay/src/internal/queue"
	"logrelay/src/internal/sink"
	"logrelay/src/internal/source"

	"github.com/lixenwraith/log"
	"golang.org/x/sync/errgroup"
)

// State is the supervisor lifecycle phase
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateDraining:
		return "DRAINING"
	case StateStopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Options tunes a Supervisor
type Options struct {
	// Log origin passed to the source and used as message source name
	Identifier string

	// How far before start the stream is replayed
	Lookback time.Duration

	QueueSize int

	// config.ShutdownDrain or config.ShutdownCancel
	ShutdownMode string

	// Upper bound for draining after an interrupt, 0 waits until the queue is empty.
	// A source that ends on its own is always drained completely.
	DrainTimeout time.Duration
}

// Supervisor owns the pipeline: it opens the sink, runs ingestion and
// delivery concurrently and shuts both down when either ends or ctx is done.
type Supervisor struct {
	source source.LogSource
	filter *filter.Filter
	sink   sink.NotificationSink
	pacer  flow.Pacer
	opts   Options
	logger *log.Logger

	state atomic.Int32
	stats *Stats
	queue atomic.Pointer[queue.Queue[core.OutboundMessage]]
}

func NewSupervisor(src source.LogSource, f *filter.Filter, snk sink.NotificationSink, pacer flow.Pacer,
	opts Options, logger *log.Logger) *Supervisor {
	if opts.QueueSize < 1 {
		opts.QueueSize = core.DefaultQueueSize
	}
	if opts.ShutdownMode == "" {
		opts.ShutdownMode = config.ShutdownDrain
	}
	return &Supervisor{
		source: src,
		filter: f,
		sink:   snk,
		pacer:  pacer,
		opts:   opts,
		logger: logger,
		stats:  NewStats(),
	}
}

// State returns the current lifecycle phase
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

func (s *Supervisor) setState(state State) {
	s.state.Store(int32(state))
	s.logger.Debug("msg", "Pipeline state changed",
		"component", "supervisor",
		"state", state.String())
}

// Run blocks until the pipeline has stopped. It fails only when the sink
// cannot be opened outside of a shutdown; every later failure is logged and
// ends in STOPPED.
func (s *Supervisor) Run(ctx context.Context) error {
	s.setState(StateStarting)

	if err := s.sink.Open(ctx); err != nil {
		s.setState(StateStopped)
		if ctx.Err() != nil {
			s.logger.Info("msg", "Shutdown requested before pipeline start",
				"component", "supervisor",
				"sink", s.sink.Name(),
				"error", err)
			return nil
		}
		return fmt.Errorf("failed to open %s sink: %w", s.sink.Name(), err)
	}

	q := queue.New[core.OutboundMessage](s.opts.QueueSize)
	s.queue.Store(q)

	ingester := NewIngester(s.source, s.opts.Identifier, s.opts.Lookback, s.filter, q, s.stats, s.logger)
	deliverer := NewDeliverer(q, s.sink, s.pacer, s.stats, s.logger)

	ingestCtx, cancelIngest := context.WithCancel(ctx)
	defer cancelIngest()
	// Delivery outlives the interrupt so the queue can drain
	deliverCtx, cancelDeliver := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelDeliver()

	ingestDone := make(chan struct{})
	deliverDone := make(chan struct{})

	var g errgroup.Group
	g.Go(func() error {
		defer close(ingestDone)
		return s.guard("ingester", func() error { return ingester.Run(ingestCtx) })
	})
	g.Go(func() error {
		defer close(deliverDone)
		return s.guard("deliverer", func() error { return deliverer.Run(deliverCtx) })
	})

	s.setState(StateRunning)
	s.logger.Info("msg", "Pipeline running",
		"component", "supervisor",
		"source", s.opts.Identifier,
		"sink", s.sink.Name(),
		"queue_size", s.opts.QueueSize)

	select {
	case <-ingestDone:
		s.logger.Info("msg", "Ingestion finished", "component", "supervisor")
	case <-deliverDone:
		s.logger.Warn("msg", "Delivery stopped unexpectedly", "component", "supervisor")
	case <-ctx.Done():
		s.logger.Info("msg", "Shutdown requested", "component", "supervisor")
	}

	s.setState(StateDraining)
	interrupted := ctx.Err() != nil

	cancelIngest()
	<-ingestDone
	q.Close()

	s.drain(q, deliverDone, interrupted)

	cancelDeliver()
	if err := g.Wait(); err != nil {
		s.logger.Error("msg", "Pipeline loop failed",
			"component", "supervisor",
			"error", err)
	}

	if err := s.sink.Close(); err != nil {
		s.logger.Warn("msg", "Failed to close sink",
			"component", "supervisor",
			"sink", s.sink.Name(),
			"error", err)
	}

	s.setState(StateStopped)
	s.logger.Info("msg", "Pipeline stopped",
		"component", "supervisor",
		"lines_accepted", s.stats.LinesAccepted.Load(),
		"messages_sent", s.stats.MessagesSent.Load(),
		"messages_failed", s.stats.MessagesFailed.Load(),
		"messages_abandoned", s.stats.MessagesAbandoned.Load())
	return nil
}

// drain waits for queued messages to be delivered according to the shutdown mode
func (s *Supervisor) drain(q *queue.Queue[core.OutboundMessage], deliverDone <-chan struct{}, interrupted bool) {
	select {
	case <-deliverDone:
		s.abandon(q, "delivery stopped")
		return
	default:
	}

	if interrupted && s.opts.ShutdownMode == config.ShutdownCancel {
		s.abandon(q, "shutdown mode cancel")
		return
	}

	pending := q.Pending()
	if pending == 0 {
		return
	}

	var timeout time.Duration
	if interrupted {
		timeout = s.opts.DrainTimeout
	}
	s.logger.Info("msg", "Draining queue",
		"component", "supervisor",
		"pending", pending,
		"timeout", timeout.String())

	var joinCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		joinCtx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		joinCtx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	// A deliverer that dies mid-drain will never acknowledge the rest
	go func() {
		select {
		case <-deliverDone:
			cancel()
		case <-joinCtx.Done():
		}
	}()

	if err := q.Join(joinCtx); err != nil {
		s.abandon(q, "drain incomplete")
		return
	}
	s.logger.Info("msg", "Queue drained", "component", "supervisor")
}

func (s *Supervisor) abandon(q *queue.Queue[core.OutboundMessage], reason string) {
	n := q.Len()
	if n == 0 {
		return
	}
	s.stats.MessagesAbandoned.Add(uint64(n))
	s.logger.Warn("msg", "Abandoning queued messages",
		"component", "supervisor",
		"count", n,
		"reason", reason)
}

// guard converts a panic in a pipeline loop into an error
func (s *Supervisor) guard(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("msg", "Panic in pipeline loop",
				"component", "supervisor",
				"loop", name,
				"panic", r)
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return fn()
}

// GetStats returns a snapshot of the pipeline state and counters
func (s *Supervisor) GetStats() map[string]any {
	stats := s.stats.Snapshot()
	stats["state"] = s.State().String()
	stats["source"] = s.opts.Identifier
	stats["sink"] = s.sink.Name()

	if q := s.queue.Load(); q != nil {
		stats["queue_length"] = q.Len()
		stats["queue_pending"] = q.Pending()
		stats["queue_capacity"] = q.Cap()
	}

	if reporter, ok := s.sink.(interface{ GetStats() map[string]any }); ok {
		stats["sink_stats"] = reporter.GetStats()
	}
	return stats
}
