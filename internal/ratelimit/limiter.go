// Package ratelimit provides per-key token bucket rate limiting for MCP tools.
package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned by CheckLimit when a tool has no tokens left.
var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter hands out one rate.Limiter per key, all sharing the same rate and
// burst. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	keys    map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
	nowFunc func() time.Time // injectable clock for testing
}

// NewLimiter creates a rate limiter with the given rate (tokens/sec) and burst size.
// The burst size also serves as the initial number of tokens available.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		keys:    make(map[string]*rate.Limiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		nowFunc: time.Now,
	}
}

// PerMinute creates a limiter allowing n requests per minute.
func PerMinute(n float64, burst int) *Limiter {
	return NewLimiter(n/60.0, burst)
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.keys[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.keys[key] = lim
	}
	now := l.nowFunc()
	l.mu.Unlock()

	return lim.AllowN(now, 1)
}

// ToolLimiters maps tool names to their rate limiters.
type ToolLimiters map[string]*Limiter

// NewToolLimiters creates the default set of per-tool rate limiters.
// Sweeps are the most expensive call and get the tightest budget.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		"lif_trace": PerMinute(60, 10),
		"lif_rate":  PerMinute(20, 5),
		"lif_noise": PerMinute(20, 5),
		"lif_sweep": PerMinute(5, 2),
	}
}

// CheckLimit checks the rate limit for a given tool name.
// Returns nil if allowed, or an error wrapping ErrRateLimited.
// Tools without a configured limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}

	if !limiter.Allow(toolName) {
		return fmt.Errorf("%w for %s, please try again shortly", ErrRateLimited, toolName)
	}
	return nil
}
