// middleware/rate_limiter.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/diamondgarment/backend/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter keeps one token bucket per client IP and route, blocking an IP
// for a while once it runs dry.
type RateLimiter struct {
	limiters       map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             sync.Mutex
	defaultLimit   endpointLimit
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
	now            func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters:   make(map[string]*rate.Limiter),
		blockedIPs: make(map[string]time.Time),
		defaultLimit: endpointLimit{
			limit: rate.Every(100 * time.Millisecond), // 10 requests per second
			burst: 20,
		},
		blockDuration: 5 * time.Minute,
		endpointLimits: map[string]endpointLimit{
			// strict on login to slow down password guessing
			"/api/auth/login": {limit: rate.Every(2 * time.Second), burst: 5},
			"/api/contact":    {limit: rate.Every(time.Second), burst: 5},
			"/api/upload":     {limit: rate.Every(500 * time.Millisecond), burst: 10},
		},
		now: time.Now,
	}
}

// Cleanup drops expired blocks until ctx is done.
func (r *RateLimiter) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for ip, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, ip)
			r.resetLocked(ip)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, "/uploads/") {
				return next(c)
			}

			ip := c.RealIP()
			if until, blocked := r.blocked(ip); blocked {
				return tooManyRequests(c, until)
			}

			path := c.Path()
			limit, ok := r.endpointLimits[path]
			if !ok {
				limit = r.defaultLimit
			}

			if !r.getLimiter(ip+"|"+path, limit).Allow() {
				until := r.now().Add(r.blockDuration)
				r.mu.Lock()
				r.blockedIPs[ip] = until
				r.mu.Unlock()
				return tooManyRequests(c, until)
			}

			return next(c)
		}
	}
}

func (r *RateLimiter) blocked(ip string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.blockedIPs[ip]
	if !ok {
		return time.Time{}, false
	}
	if r.now().Before(until) {
		return until, true
	}
	delete(r.blockedIPs, ip)
	r.resetLocked(ip)
	return time.Time{}, false
}

func (r *RateLimiter) resetLocked(ip string) {
	prefix := ip + "|"
	for key := range r.limiters {
		if strings.HasPrefix(key, prefix) {
			delete(r.limiters, key)
		}
	}
}

func (r *RateLimiter) getLimiter(key string, l endpointLimit) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		r.limiters[key] = limiter
	}
	return limiter
}

func tooManyRequests(c echo.Context, until time.Time) error {
	c.Response().Header().Set("Retry-After", until.UTC().Format(http.TimeFormat))
	return c.JSON(http.StatusTooManyRequests, models.Response{
		Success: false,
		Message: "Too many requests, please try again later",
	})
}
