package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/logging"
	"github.com/gokatarajesh/icebreaker/internal/metrics"
	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
)

const rateLimitRedisTimeout = 200 * time.Millisecond

// RateLimiter enforces a fixed window request budget per client IP, counted in Redis.
type RateLimiter struct {
	redis   *redis.Client
	max     int
	window  time.Duration
	prefix  string
	metrics *metrics.Collectors
	logger  zerolog.Logger
}

func NewRateLimiter(client *redis.Client, max int, window time.Duration, coll *metrics.Collectors, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		redis:   client,
		max:     max,
		window:  window,
		prefix:  "icebreaker:rate:ip:",
		metrics: coll,
		logger:  logger.With().Str("component", "rate_limiter").Logger(),
	}
}

// Allow counts one hit for key and reports whether it is within budget along with
// the remaining allowance.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	ctx, cancel := context.WithTimeout(ctx, rateLimitRedisTimeout)
	defer cancel()

	redisKey := l.prefix + key
	acquired, err := l.redis.SetNX(ctx, redisKey, 1, l.window).Result()
	if err != nil {
		return true, l.max, fmt.Errorf("rate limit setnx: %w", err)
	}
	count := int64(1)
	if !acquired {
		count, err = l.redis.Incr(ctx, redisKey).Result()
		if err != nil {
			return true, l.max, fmt.Errorf("rate limit incr: %w", err)
		}
		// A key left without expiry would block the client forever.
		if ttl, ttlErr := l.redis.TTL(ctx, redisKey).Result(); ttlErr == nil && ttl < 0 {
			_ = l.redis.Expire(ctx, redisKey, l.window).Err()
		}
	}

	remaining := l.max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= l.max, remaining, nil
}

// Middleware rejects clients over budget with 429. Redis failures let the request through.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exemptPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		allowed, remaining, err := l.Allow(r.Context(), clientIP(r))
		if err != nil {
			logging.Ctx(r.Context(), l.logger).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			l.metrics.ObserveRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			httperrors.RespondTooManyRequests(w, "Too many requests from this IP, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func exemptPath(path string) bool {
	switch path {
	case "/health", "/healthz", "/metrics":
		return true
	}
	return false
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
