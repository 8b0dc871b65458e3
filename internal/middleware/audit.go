package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/hr-manager/internal/lib/job"
	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
)

// AuditEnqueueTimeout bounds the Redis round trip made after each mutation.
const AuditEnqueueTimeout = 2 * time.Second

// AuditMiddleware records every non-GET request once it has completed.
type AuditMiddleware struct {
	server *server.Server
}

func NewAuditMiddleware(s *server.Server) *AuditMiddleware {
	return &AuditMiddleware{server: s}
}

// Trail logs each mutating request and, when Redis is enabled, queues an
// audit:mutation task that stores it in audit_events. Audit failures never
// change the response.
func (am *AuditMiddleware) Trail() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}

			event := model.AuditEvent{
				RequestID:  GetRequestID(c),
				Method:     method,
				Path:       c.Request().URL.Path,
				Status:     status,
				LatencyMs:  time.Since(start).Milliseconds(),
				OccurredAt: start.UTC(),
			}

			logger := GetLogger(c)
			logger.Info().
				Str("audit_method", event.Method).
				Str("audit_path", event.Path).
				Int("audit_status", event.Status).
				Time("occurred_at", event.OccurredAt).
				Msg("mutation")

			if am.server.Job.Enabled() {
				task, taskErr := job.NewAuditMutationTask(event)
				if taskErr == nil {
					ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), AuditEnqueueTimeout)
					taskErr = am.server.Job.Enqueue(ctx, task)
					cancel()
				}
				if taskErr != nil {
					logger.Error().Err(taskErr).Msg("failed to queue audit event")
				}
			}

			return err
		}
	}
}
