// Package middleware holds the Echo middleware used by the router:
// request ids, request-scoped logging, New Relic tracing, CORS, rate
// limiting, the audit trail and the global error handler.
package middleware
