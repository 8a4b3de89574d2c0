package sitrans

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_TryAcquire(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60, // 1 per second
		BurstSize:         3,
	})

	// Should be able to acquire burst size immediately
	for i := 0; i < 3; i++ {
		if !limiter.TryAcquire() {
			t.Errorf("Expected to acquire token %d", i)
		}
	}

	// Fourth should fail
	if limiter.TryAcquire() {
		t.Error("Expected fourth acquire to fail")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 600, // 10 per second
		BurstSize:         1,
	})

	limiter.TryAcquire()

	if limiter.TryAcquire() {
		t.Error("Expected acquire to fail after drain")
	}

	// Wait for refill (100ms for 1 token at 10/sec)
	time.Sleep(150 * time.Millisecond)

	if !limiter.TryAcquire() {
		t.Error("Expected acquire to succeed after refill")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{})
	if limiter.Available() != 60 {
		t.Errorf("Expected default burst of 60, got %v", limiter.Available())
	}
}

func TestRateLimitedProvider_CancelledWait(t *testing.T) {
	p := &stubProvider{}
	limited := NewRateLimitedProvider(p, RateLimitConfig{
		RequestsPerMinute: 1,
		BurstSize:         1,
	})

	// Drain the bucket, then cancel while waiting.
	limited.Limiter().TryAcquire()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := limited.Translate(ctx, TranslateRequest{Texts: []string{"x"}})
	if err == nil {
		t.Fatal("Expected error from cancelled wait")
	}
	if p.callCount != 0 {
		t.Errorf("Expected backend never called, got %d calls", p.callCount)
	}
}
