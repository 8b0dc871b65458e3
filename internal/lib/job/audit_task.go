package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/hibiken/asynq"
)

// TaskAuditMutation records one completed non-GET request.
const TaskAuditMutation = "audit:mutation"

// NewAuditMutationTask builds the task for event. Audit tasks are low
// priority and retried up to three times.
func NewAuditMutationTask(event model.AuditEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAuditMutation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(10*time.Second),
	), nil
}
