package middleware

import (
	"github.com/deppfellow/hr-manager/internal/server"
)

// Middlewares groups every middleware component built from the server.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Audit           *AuditMiddleware
}

// NewMiddlewares builds all middleware. Tracing degrades to a no-op when
// New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Audit:           NewAuditMiddleware(s),
	}
}
