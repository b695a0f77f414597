package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/statuspage/internal/httpserver/render"
	"github.com/MrSnakeDoc/statuspage/internal/utils"
)

// ThrottleConfig is a per-client token bucket. Burst <= 0 disables it.
type ThrottleConfig struct {
	Burst      int           // attempts available at once
	PerMinute  int           // refill rate
	IdleTTL    time.Duration // buckets unused this long are dropped
	TrustProxy bool
	Now        func() time.Time
}

type bucket struct {
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

type throttler struct {
	cfg       ThrottleConfig
	rate      float64 // tokens per second
	capacity  float64
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newThrottler(cfg ThrottleConfig) *throttler {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.PerMinute < 1 {
		cfg.PerMinute = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &throttler{
		cfg:       cfg,
		rate:      float64(cfg.PerMinute) / 60.0,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket),
		lastSweep: cfg.Now(),
	}
}

// take consumes one token for key. When none is left it reports how many
// seconds until the next one.
func (t *throttler) take(key string, now time.Time) (ok bool, retryAfter int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.lastSweep) >= t.cfg.IdleTTL {
		for k, b := range t.buckets {
			if now.Sub(b.lastSeen) > t.cfg.IdleTTL {
				delete(t.buckets, k)
			}
		}
		t.lastSweep = now
	}

	b := t.buckets[key]
	if b == nil {
		b = &bucket{tokens: t.capacity, lastRef: now}
		t.buckets[key] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.lastRef).Seconds(); elapsed > 0 {
		b.tokens = math.Min(t.capacity, b.tokens+elapsed*t.rate)
		b.lastRef = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	sec := int(math.Ceil((1 - b.tokens) / t.rate))
	if sec < 1 {
		sec = 1
	}
	return false, sec
}

// Throttle limits how often one client may hit the wrapped route. It guards
// the login endpoint against password guessing.
func Throttle(cfg ThrottleConfig) func(http.Handler) http.Handler {
	if cfg.Burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	t := newThrottler(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, t.cfg.TrustProxy)
			if ok, retry := t.take(key, t.cfg.Now()); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				render.Problem(w, http.StatusTooManyRequests, render.CodeTooManyRequests, "Too many login attempts, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
