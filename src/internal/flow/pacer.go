// FILE: logrelay/src/internal/flow/pacer.go
package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"logrelay/src/internal/config"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// Pacer spaces out deliveries to stay inside the sink's rate limits
type Pacer interface {
	// Wait blocks until the next send is permitted or ctx is done
	Wait(ctx context.Context) error
	// Backoff holds every following Wait for at least d
	Backoff(d time.Duration)
}

// New creates the pacer selected by configuration
func New(cfg config.PacingConfig, logger *log.Logger) (Pacer, error) {
	var p Pacer
	switch cfg.Policy {
	case config.PacingNone:
		p = NewNoPacer()
	case config.PacingFixed, "":
		p = NewFixedDelay(time.Duration(cfg.DelayMS) * time.Millisecond)
	case config.PacingBucket:
		if cfg.Rate <= 0 {
			return nil, fmt.Errorf("token bucket rate must be positive: %f", cfg.Rate)
		}
		p = NewTokenBucket(cfg.Rate, int(cfg.Burst))
	default:
		return nil, fmt.Errorf("unknown pacing policy: %s", cfg.Policy)
	}

	logger.Debug("msg", "Pacer created",
		"component", "pacer",
		"policy", cfg.Policy,
		"delay_ms", cfg.DelayMS,
		"rate", cfg.Rate,
		"burst", cfg.Burst)

	return p, nil
}

// cooldown tracks a server-imposed pause shared by all policies
type cooldown struct {
	mu    sync.Mutex
	until time.Time
}

func (c *cooldown) Backoff(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := time.Now().Add(d); t.After(c.until) {
		c.until = t
	}
}

func (c *cooldown) wait(ctx context.Context) error {
	c.mu.Lock()
	until := c.until
	c.mu.Unlock()
	return sleep(ctx, time.Until(until))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoPacer only honours backoff
type NoPacer struct {
	cooldown
}

func NewNoPacer() *NoPacer {
	return &NoPacer{}
}

func (p *NoPacer) Wait(ctx context.Context) error {
	return p.wait(ctx)
}

// FixedDelay enforces a minimum interval between consecutive sends
type FixedDelay struct {
	cooldown
	delay time.Duration

	lastMu sync.Mutex
	last   time.Time
}

func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

func (p *FixedDelay) Wait(ctx context.Context) error {
	if err := p.wait(ctx); err != nil {
		return err
	}

	p.lastMu.Lock()
	next := p.last.Add(p.delay)
	p.lastMu.Unlock()

	if err := sleep(ctx, time.Until(next)); err != nil {
		return err
	}

	p.lastMu.Lock()
	p.last = time.Now()
	p.lastMu.Unlock()
	return nil
}

// TokenBucket permits bursts up to burst sends, refilled at rate per second
type TokenBucket struct {
	cooldown
	limiter *rate.Limiter
}

func NewTokenBucket(perSecond float64, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (p *TokenBucket) Wait(ctx context.Context) error {
	if err := p.wait(ctx); err != nil {
		return err
	}
	return p.limiter.Wait(ctx)
}
