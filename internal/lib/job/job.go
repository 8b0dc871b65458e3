// Package job runs background work on Asynq.
//
// Asynq is a Redis-backed queue: requests enqueue tasks through Client and
// the worker server started by Start processes them. Without Redis the
// service is disabled and Enqueue only logs.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/hr-manager/internal/config"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client and worker server.
type JobService struct {
	// Client enqueues tasks. Nil when Redis is disabled.
	Client *asynq.Client

	server   *asynq.Server
	logger   *zerolog.Logger
	recorder AuditRecorder
}

// NewJobService configures Asynq against the Redis address in cfg.
//
// Queue weights give "critical" work six of every ten worker slots; audit
// tasks go to "low".
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	if !cfg.Redis.Enabled {
		return &JobService{logger: logger}
	}

	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Enabled reports whether tasks are queued to Redis.
func (j *JobService) Enabled() bool {
	return j != nil && j.Client != nil
}

// Start registers task handlers and starts the workers in the background.
// It is a no-op when the service is disabled.
func (j *JobService) Start() error {
	if !j.Enabled() {
		j.logger.Info().Msg("redis disabled, background job server not started")
		return nil
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskAuditMutation, j.handleAuditMutationTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return errors.Wrap(err, "failed to start job server")
	}

	return nil
}

// Enqueue submits task. When the service is disabled it returns nil
// without queuing anything.
func (j *JobService) Enqueue(ctx context.Context, task *asynq.Task) error {
	if !j.Enabled() {
		return nil
	}
	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrapf(err, "failed to enqueue %s task", task.Type())
	}
	zerolog.Ctx(ctx).Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("type", task.Type()).
		Msg("task enqueued")
	return nil
}

// Stop shuts the workers down and closes the client.
func (j *JobService) Stop() {
	if !j.Enabled() {
		return
	}
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes Asynq's own logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Str("component", "asynq").Msg(sprint(args)) }
func (l asynqLogger) Info(args ...any)  { l.logger.Info().Str("component", "asynq").Msg(sprint(args)) }
func (l asynqLogger) Warn(args ...any)  { l.logger.Warn().Str("component", "asynq").Msg(sprint(args)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Str("component", "asynq").Msg(sprint(args)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Str("component", "asynq").Msg(sprint(args)) }

func sprint(args []any) string {
	return fmt.Sprint(args...)
}
