package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/deppfellow/hr-manager/internal/server"
)

// RateLimitKeyPrefix namespaces limiter counters in Redis.
const RateLimitKeyPrefix = "hr-manager:ratelimit"

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit enforces rate_limit.requests per rate_limit.window for each client
// IP. Counters live in Redis when it is enabled, in process memory otherwise.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit

	var store middleware.RateLimiterStore
	if r.server.Redis != nil {
		store = NewRedisRateLimiterStore(r.server.Redis, cfg.Requests, cfg.Window, r.server.Logger)
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
			Burst:     cfg.Requests,
			ExpiresIn: 3 * cfg.Window,
		})
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return !cfg.Enabled || c.Request().Method == echo.OPTIONS
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil, nil).WithCause(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Str("endpoint", c.Path()).
				Msg("rate limit exceeded")
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			return errs.NewTooManyRequestsError(cfg.Window)
		},
	})
}

// RecordRateLimitHit reports a denied request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore is a fixed window counter shared by every instance
// of the service.
type RedisRateLimiterStore struct {
	client  *redis.Client
	limit   int
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
	logger  *zerolog.Logger
}

func NewRedisRateLimiterStore(client *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client:  client,
		limit:   limit,
		window:  window,
		timeout: 500 * time.Millisecond,
		now:     time.Now,
		logger:  logger,
	}
}

// Allow implements middleware.RateLimiterStore. When Redis cannot be
// reached the request is allowed.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	bucket := s.now().UnixMilli() / s.window.Milliseconds()
	key := fmt.Sprintf("%s:%s:%d", RateLimitKeyPrefix, identifier, bucket)

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().Err(err).Msg("rate limiter store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= int64(s.limit), nil
}
