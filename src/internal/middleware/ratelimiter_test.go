// FILE: logrelay/src/internal/middleware/ratelimiter_test.go
package middleware

import (
	"testing"
	"time"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func newTestLimiter(t *testing.T, rps float64, burst int) *RateLimiter {
	rl := NewRateLimiter(rps, burst, time.Minute, log.NewLogger())
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiterAllow(t *testing.T) {
	rl := newTestLimiter(t, 0.001, 2)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")

	// Budgets are tracked per client
	assert.True(t, rl.Allow("10.0.0.2"))

	stats := rl.GetStats()
	assert.Equal(t, 2, stats["active_clients"])
	assert.Equal(t, uint64(3), stats["total_allowed"])
	assert.Equal(t, uint64(1), stats["total_blocked"])
}

func TestRateLimiterHandler(t *testing.T) {
	rl := newTestLimiter(t, 0.001, 1)

	calls := 0
	handler := rl.Handler(func(ctx *fasthttp.RequestCtx) {
		calls++
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	first := &fasthttp.RequestCtx{}
	handler(first)
	assert.Equal(t, fasthttp.StatusOK, first.Response.StatusCode())

	second := &fasthttp.RequestCtx{}
	handler(second)
	assert.Equal(t, fasthttp.StatusTooManyRequests, second.Response.StatusCode())
	assert.Equal(t, "1", string(second.Response.Header.Peek("Retry-After")))
	assert.Contains(t, string(second.Response.Body()), "Rate limit exceeded")

	assert.Equal(t, 1, calls)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newTestLimiter(t, 10, 1)

	rl.Allow("10.0.0.1")
	assert.Equal(t, 0, rl.removeOldClients(time.Now()))
	assert.Equal(t, 1, rl.removeOldClients(time.Now().Add(3*time.Minute)))
	assert.Equal(t, 0, rl.GetStats()["active_clients"])

	rl.Stop()
	rl.Stop()
}

func TestNewRateLimiterClampsBurst(t *testing.T) {
	rl := newTestLimiter(t, 1, 0)
	assert.Equal(t, 1, rl.GetStats()["burst_size"])
}
