// FILE: logrelay/src/internal/middleware/ratelimiter.go
package middleware

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// RateLimiter provides per-client request limiting for fasthttp handlers
type RateLimiter struct {
	clients         sync.Map // map[string]*clientLimiter
	requestsPerSec  float64
	burstSize       int
	cleanupInterval time.Duration
	logger          *log.Logger
	done            chan struct{}
	stopOnce        sync.Once

	// Statistics
	totalAllowed atomic.Uint64
	totalBlocked atomic.Uint64
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewRateLimiter creates a limiter and starts its idle-client cleanup routine
func NewRateLimiter(requestsPerSec float64, burstSize int, cleanupInterval time.Duration, logger *log.Logger) *RateLimiter {
	if burstSize < 1 {
		burstSize = 1
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	rl := &RateLimiter{
		requestsPerSec:  requestsPerSec,
		burstSize:       burstSize,
		cleanupInterval: cleanupInterval,
		logger:          logger,
		done:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Handler wraps next, answering 429 once a client exceeds its budget
func (rl *RateLimiter) Handler(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		clientIP := ctx.RemoteIP().String()

		if !rl.Allow(clientIP) {
			ctx.SetContentType("application/json")
			ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
			ctx.Response.Header.Set("Retry-After", "1")
			json.NewEncoder(ctx).Encode(map[string]any{
				"error": "Rate limit exceeded",
			})
			return
		}

		next(ctx)
	}
}

// Allow reports whether a request from the client may proceed
func (rl *RateLimiter) Allow(clientIP string) bool {
	if rl.getLimiter(clientIP).Allow() {
		rl.totalAllowed.Add(1)
		return true
	}

	rl.totalBlocked.Add(1)
	rl.logger.Debug("msg", "Status request rate limited",
		"component", "ratelimiter",
		"client", clientIP)
	return false
}

func (rl *RateLimiter) getLimiter(clientIP string) *rate.Limiter {
	now := time.Now().UnixNano()

	if val, ok := rl.clients.Load(clientIP); ok {
		client := val.(*clientLimiter)
		client.lastSeen.Store(now)
		return client.limiter
	}

	client := &clientLimiter{
		limiter: rate.NewLimiter(rate.Limit(rl.requestsPerSec), rl.burstSize),
	}
	client.lastSeen.Store(now)

	actual, _ := rl.clients.LoadOrStore(clientIP, client)
	return actual.(*clientLimiter).limiter
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.removeOldClients(time.Now())
		}
	}
}

// removeOldClients drops limiters idle for more than two cleanup intervals
func (rl *RateLimiter) removeOldClients(now time.Time) int {
	threshold := now.Add(-rl.cleanupInterval * 2).UnixNano()

	removed := 0
	rl.clients.Range(func(key, value any) bool {
		if value.(*clientLimiter).lastSeen.Load() < threshold {
			rl.clients.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Stop ends the cleanup routine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}

func (rl *RateLimiter) GetStats() map[string]any {
	count := 0
	rl.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return map[string]any{
		"active_clients":   count,
		"requests_per_sec": rl.requestsPerSec,
		"burst_size":       rl.burstSize,
		"total_allowed":    rl.totalAllowed.Load(),
		"total_blocked":    rl.totalBlocked.Load(),
	}
}
