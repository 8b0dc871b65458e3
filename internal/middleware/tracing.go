package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/deppfellow/hr-manager/internal/server"
)

// TracingMiddleware owns the New Relic Echo integration.
//
//  1. NewRelicMiddleware starts a transaction per request
//  2. EnhanceTracing adds request attributes and notices internal errors
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns nrecho's middleware, or a pass-through when
// New Relic is disabled.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing annotates the transaction. Client-kind errors are expected
// traffic and are only recorded as attributes.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			err := next(c)

			if err != nil {
				kind := errs.KindInternal
				if status := statusOf(err); status >= 400 && status < 500 {
					kind = errs.KindClient
				}
				txn.AddAttribute("error.kind", string(kind))
				if kind == errs.KindInternal {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}

			if op := GetOperation(c); op != "" {
				txn.AddAttribute("operation", op)
			}
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
