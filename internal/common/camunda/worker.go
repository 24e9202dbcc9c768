// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"airline-assist/internal/common/config"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/metrics"
	"airline-assist/internal/common/observability"
)

// StartWorker opens a job worker for taskType unless it is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jw
}

// ExecFunc runs the task once the job variables have been decoded.
type ExecFunc func(ctx context.Context) (interface{}, error)

// JobRunner holds the plumbing every assistant worker shares: variable
// decoding, the job timeout, a span, metrics, completion and error reporting.
type JobRunner struct {
	taskType     string
	timeout      time.Duration
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
	obs          *observability.Observability
}

func NewJobRunner(taskType string, timeout time.Duration, log logger.Logger, obs *observability.Observability) *JobRunner {
	if obs == nil {
		obs = observability.Noop()
	}
	return &JobRunner{
		taskType:     taskType,
		timeout:      timeout,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
		obs:          obs,
	}
}

// Run decodes the job variables into input, executes, then completes the job
// with the output or reports the error.
func (r *JobRunner) Run(client worker.JobClient, job entities.Job, input interface{}, exec ExecFunc) {
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	output, err := r.Process(job, input, exec)
	if err != nil {
		r.errorHandler.HandleJobError(context.Background(), client, job, err)
		return
	}
	r.completeJob(client, job, output)
}

// Process is Run without the Zeebe commands.
func (r *JobRunner) Process(job entities.Job, input interface{}, exec ExecFunc) (interface{}, error) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	ctx, span := r.obs.StartSpan(context.Background(), r.taskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	output, err := r.decodeAndExec(ctx, job, input, exec)

	status := "completed"
	if err != nil {
		status = "failed"
		code := apperrors.AsStandardError(err).Code
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(code)).Inc()
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
	return output, err
}

func (r *JobRunner) decodeAndExec(ctx context.Context, job entities.Job, input interface{}, exec ExecFunc) (interface{}, error) {
	if err := json.Unmarshal([]byte(job.Variables), input); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("parse input: %v", err))
	}
	return exec(ctx)
}

func (r *JobRunner) completeJob(client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
