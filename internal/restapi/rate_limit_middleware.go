package restapi

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"edudash.insights.org/internal/models"
)

// noKey is the shared bucket for requests without an API key.
const noKey = "__no_key__"

// RateLimitMiddleware provides per-API-key rate limiting
type RateLimitMiddleware struct {
	limiters    map[string]*rate.Limiter
	mu          sync.RWMutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	exemptKeys  map[string]bool
	done        chan struct{}
	cleanupDone chan struct{}
	stopOnce    sync.Once
}

// NewRateLimitMiddleware creates a new rate limiting middleware.
// ratePerInterval requests are allowed per interval and per API key, with a
// burst of the same size. Zero blocks everything; a negative rate disables
// limiting. Requests carrying one of exempt are never limited.
// The returned middleware runs a cleanup goroutine until Stop is called.
func NewRateLimitMiddleware(ratePerInterval int, interval time.Duration, exempt ...string) *RateLimitMiddleware {
	var rateLimit rate.Limit
	switch {
	case ratePerInterval < 0:
		rateLimit = rate.Inf
	case ratePerInterval == 0:
		rateLimit = 0
	default:
		rateLimit = rate.Every(interval / time.Duration(ratePerInterval))
	}

	exemptKeys := make(map[string]bool, len(exempt))
	for _, key := range exempt {
		exemptKeys[key] = true
	}

	middleware := &RateLimitMiddleware{
		limiters:    make(map[string]*rate.Limiter),
		rateLimit:   rateLimit,
		burstSize:   max(ratePerInterval, 0),
		cleanupTick: time.NewTicker(5 * time.Minute),
		exemptKeys:  exemptKeys,
		done:        make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}

	go middleware.cleanup()

	return middleware
}

// getLimiter gets or creates a rate limiter for the given API key
func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[apiKey]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := rl.limiters[apiKey]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rateLimit, rl.burstSize)
	rl.limiters[apiKey] = limiter

	return limiter
}

// Handler wraps next with per-key limiting.
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.URL.Query().Get("key")
		if apiKey == "" {
			apiKey = noKey
		}

		if rl.exemptKeys[apiKey] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(apiKey).Allow() {
			rl.sendRateLimitExceeded(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// retryAfter is the time until one token refills, rounded up to whole seconds.
func (rl *RateLimitMiddleware) retryAfter() int {
	switch rl.rateLimit {
	case 0:
		return int(time.Hour.Seconds())
	case rate.Inf:
		return 1
	}
	return max(1, int(math.Ceil(1/float64(rl.rateLimit))))
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")

	response := models.NewEmptyEntryResponse("Rate limit exceeded. Please try again later.")
	response.Code = http.StatusTooManyRequests

	writeJSON(w, r, http.StatusTooManyRequests, response)
}

// cleanup periodically drops limiters that are back at full burst, which
// means their key has been idle for at least one refill period.
func (rl *RateLimitMiddleware) cleanup() {
	defer close(rl.cleanupDone)
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanupTick.C:
			rl.dropIdle()
		}
	}
}

func (rl *RateLimitMiddleware) dropIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burstSize) {
			delete(rl.limiters, key)
		}
	}
}

// Stop ends the cleanup goroutine and waits for it to exit. It is safe to
// call more than once.
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTick.Stop()
		close(rl.done)
	})
	<-rl.cleanupDone
}

func (rl *RateLimitMiddleware) trackedKeys() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}
