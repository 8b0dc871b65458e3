package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
)

type AuditRepository struct {
	server *server.Server
}

func NewAuditRepository(s *server.Server) *AuditRepository {
	return &AuditRepository{server: s}
}

// RecordAuditEvent stores one completed mutating request.
func (r *AuditRepository) RecordAuditEvent(ctx context.Context, event model.AuditEvent) error {
	_, err := r.server.DB.Pool.Exec(ctx, `
		INSERT INTO audit_events (request_id, method, path, status, latency_ms, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.RequestID, event.Method, event.Path, event.Status, event.LatencyMs, event.OccurredAt)
	if err != nil {
		return errors.Wrap(err, "failed to insert audit event")
	}
	return nil
}
