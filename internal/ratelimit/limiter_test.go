package ratelimit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(10.0, 5)
	if l == nil {
		t.Fatal("NewLimiter returned nil")
	}
	if l.limit != rate.Limit(10.0) {
		t.Errorf("limit = %v, want 10", l.limit)
	}
	if l.burst != 5 {
		t.Errorf("burst = %d, want 5", l.burst)
	}
}

func TestPerMinute(t *testing.T) {
	l := PerMinute(30, 2)
	if l.limit != rate.Limit(0.5) {
		t.Errorf("limit = %v, want 0.5", l.limit)
	}
}

func TestAllow_WithinBurst(t *testing.T) {
	l := NewLimiter(1.0, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("key1") {
			t.Errorf("request %d should be allowed (within burst)", i+1)
		}
	}
}

func TestAllow_ExceedsBurst(t *testing.T) {
	now := time.Now()
	l := NewLimiter(1.0, 2)
	l.nowFunc = func() time.Time { return now }

	l.Allow("key1")
	l.Allow("key1")

	if l.Allow("key1") {
		t.Error("request after burst exhaustion should be rejected")
	}
}

func TestAllow_RefillAfterWait(t *testing.T) {
	now := time.Now()
	l := NewLimiter(10.0, 2)
	l.nowFunc = func() time.Time { return now }

	l.Allow("key1")
	l.Allow("key1")
	if l.Allow("key1") {
		t.Error("expected rejection after burst")
	}

	// 10 tokens/sec over 200ms refills 2 tokens
	now = now.Add(200 * time.Millisecond)

	if !l.Allow("key1") {
		t.Error("expected allow after token refill")
	}
}

func TestAllow_IndependentKeys(t *testing.T) {
	now := time.Now()
	l := NewLimiter(1.0, 1)
	l.nowFunc = func() time.Time { return now }

	l.Allow("key1")
	if l.Allow("key1") {
		t.Error("key1 should be exhausted")
	}
	if !l.Allow("key2") {
		t.Error("key2 should be allowed (independent bucket)")
	}
}

func TestAllow_BurstDoesNotExceedMax(t *testing.T) {
	now := time.Now()
	l := NewLimiter(100.0, 3)
	l.nowFunc = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		l.Allow("key1")
	}

	// Would refill 1000 tokens uncapped
	now = now.Add(10 * time.Second)

	for i := 0; i < 3; i++ {
		if !l.Allow("key1") {
			t.Errorf("request %d should be allowed after refill capped at burst", i+1)
		}
	}
	if l.Allow("key1") {
		t.Error("4th request should be rejected (burst cap)")
	}
}

func TestAllow_ConcurrentAccess(t *testing.T) {
	now := time.Now()
	l := NewLimiter(1.0, 100)
	l.nowFunc = func() time.Time { return now }

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("concurrent-key")
		}()
	}

	wg.Wait()
	close(allowed)

	allowedCount := 0
	for a := range allowed {
		if a {
			allowedCount++
		}
	}
	if allowedCount != 100 {
		t.Errorf("allowed %d requests, want exactly the burst of 100", allowedCount)
	}
}

func TestToolRateLimits(t *testing.T) {
	limiters := NewToolLimiters()

	tests := []struct {
		tool  string
		burst int
	}{
		{"lif_trace", 10},
		{"lif_rate", 5},
		{"lif_noise", 5},
		{"lif_sweep", 2},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			limiter, ok := limiters[tt.tool]
			if !ok {
				t.Fatalf("missing rate limiter for tool: %s", tt.tool)
			}
			if limiter.burst != tt.burst {
				t.Errorf("burst = %d, want %d", limiter.burst, tt.burst)
			}
		})
	}
}

func TestCheckLimit(t *testing.T) {
	limiters := NewToolLimiters()

	if err := CheckLimit(limiters, "lif_trace"); err != nil {
		t.Errorf("unexpected error for lif_trace: %v", err)
	}
	if err := CheckLimit(limiters, "unknown_tool"); err != nil {
		t.Errorf("unexpected error for unknown tool: %v", err)
	}

	// Exhaust lif_sweep (burst=2)
	CheckLimit(limiters, "lif_sweep")
	CheckLimit(limiters, "lif_sweep")
	err := CheckLimit(limiters, "lif_sweep")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited after burst exhaustion, got %v", err)
	}
}
