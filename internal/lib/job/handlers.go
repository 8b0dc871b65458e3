package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/hibiken/asynq"
)

// AuditRecorder persists audit events.
type AuditRecorder interface {
	RecordAuditEvent(ctx context.Context, event model.AuditEvent) error
}

// InitHandlers sets the dependencies task handlers need. It must run
// before Start.
func (j *JobService) InitHandlers(recorder AuditRecorder) {
	j.recorder = recorder
}

func (j *JobService) handleAuditMutationTask(ctx context.Context, t *asynq.Task) error {
	var event model.AuditEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal audit payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.recorder == nil {
		return fmt.Errorf("audit recorder not initialized")
	}

	if err := j.recorder.RecordAuditEvent(ctx, event); err != nil {
		j.logger.Error().
			Err(err).
			Str("type", TaskAuditMutation).
			Str("request_id", event.RequestID).
			Msg("failed to record audit event")
		return err
	}

	j.logger.Debug().
		Str("type", TaskAuditMutation).
		Str("request_id", event.RequestID).
		Str("method", event.Method).
		Str("path", event.Path).
		Msg("audit event recorded")

	return nil
}
