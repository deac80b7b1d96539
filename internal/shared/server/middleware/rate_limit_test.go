package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("user|ENHANCE", rule)
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter := limiter.Allow("user|ENHANCE", rule)
	if allowed {
		t.Fatal("fourth request should be limited")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 2, Burst: 1}

	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatal("first request should pass")
	}
	if allowed, _ := limiter.Allow("k", rule); allowed {
		t.Fatal("second request should be limited")
	}

	now = now.Add(time.Second)
	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatal("request after refill should pass")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("user-a|G", rule); !allowed {
		t.Fatal("user-a should pass")
	}
	if allowed, _ := limiter.Allow("user-b|G", rule); !allowed {
		t.Fatal("user-b should not share user-a's bucket")
	}
}
