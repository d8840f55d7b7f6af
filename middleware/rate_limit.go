package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// EndpointLimit defines the fixed-window budget for a named endpoint
type EndpointLimit struct {
	// MaxRequests is the maximum number of requests allowed within the window
	MaxRequests int
	// Window is the time window for rate limiting
	Window time.Duration
}

// endpointLimits maps endpoint names to their budgets. Loaded once at startup;
// unknown endpoint names fall back to defaultLimit.
var endpointLimits = map[string]EndpointLimit{
	// Authentication
	"login":         {MaxRequests: 5, Window: 5 * time.Minute},
	"resetPassword": {MaxRequests: 3, Window: time.Hour},

	// Form and API endpoints
	"submitForm":  {MaxRequests: 10, Window: time.Minute},
	"contactForm": {MaxRequests: 5, Window: time.Minute},
	"exportData":  {MaxRequests: 5, Window: time.Minute},
	"uploadFile":  {MaxRequests: 20, Window: time.Minute},
}

var defaultLimit = EndpointLimit{MaxRequests: 100, Window: time.Minute}

// LimitFor returns the configured budget for an endpoint name, falling back
// to the default entry for unknown names.
func LimitFor(endpoint string) EndpointLimit {
	if limit, ok := endpointLimits[endpoint]; ok {
		return limit
	}
	return defaultLimit
}

// RateLimitResult reports the outcome of a single rate limit check
type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds until the window resets; 0 when allowed
}

// RateLimitError is returned by WithLimit when the budget is exhausted
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("חריגה ממגבלת הבקשות. נסה שוב בעוד %d שניות.", e.RetryAfter)
}

// rateLimitRecord tracks request count and window expiration
type rateLimitRecord struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window rate limiter keyed by endpoint name and
// client key. Every check consumes one unit of quota: there is no separate
// peek operation, so the first call after a window boundary always counts as
// attempt #1.
type RateLimiter struct {
	mu    sync.Mutex
	store map[string]*rateLimitRecord
	now   func() time.Time
}

// NewRateLimiter creates a rate limiter and starts its background sweep
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		store: make(map[string]*rateLimitRecord),
		now:   time.Now,
	}

	go rl.sweep()

	return rl
}

// Check consumes one unit of quota for endpoint/key and reports whether the
// request is within budget.
func (rl *RateLimiter) Check(endpoint, key string) RateLimitResult {
	limit := LimitFor(endpoint)
	storeKey := endpoint + ":" + key

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	record, exists := rl.store[storeKey]

	// Replace the record (not just the count) once the window has passed
	if !exists || now.After(record.resetAt) {
		record = &rateLimitRecord{resetAt: now.Add(limit.Window)}
		rl.store[storeKey] = record
	}

	record.count++

	allowed := record.count <= limit.MaxRequests
	remaining := limit.MaxRequests - record.count
	if remaining < 0 {
		remaining = 0
	}
	retryAfter := 0
	if !allowed {
		retryAfter = int(math.Ceil(record.resetAt.Sub(now).Seconds()))
	}

	return RateLimitResult{
		Allowed:    allowed,
		Remaining:  remaining,
		ResetAt:    record.resetAt,
		RetryAfter: retryAfter,
	}
}

// WithLimit runs fn only if the endpoint/key budget allows another request.
// When exhausted it fails immediately with a *RateLimitError without
// invoking fn.
func (rl *RateLimiter) WithLimit(endpoint, key string, fn func() error) error {
	result := rl.Check(endpoint, key)
	if !result.Allowed {
		return &RateLimitError{RetryAfter: result.RetryAfter}
	}
	return fn()
}

// Reset clears the counter for a single endpoint/key pair
func (rl *RateLimiter) Reset(endpoint, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.store, endpoint+":"+key)
}

// Middleware returns an Echo middleware enforcing the named endpoint budget
// per client IP.
func (rl *RateLimiter) Middleware(endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result := rl.Check(endpoint, c.RealIP())
			if result.Allowed {
				return next(c)
			}

			message := (&RateLimitError{RetryAfter: result.RetryAfter}).Error()
			c.Response().Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			if c.Request().Header.Get("HX-Request") == "true" {
				return c.HTML(http.StatusTooManyRequests, `<div class="form-error" role="alert">`+message+`</div>`)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, message)
		}
	}
}

// sweep removes expired records every minute, bounding memory to the keys
// seen within the last window.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for key, record := range rl.store {
			if now.After(record.resetAt) {
				delete(rl.store, key)
			}
		}
		rl.mu.Unlock()
	}
}
