package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agro-advisor/internal/common/config"
	"agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/metrics"
	"agro-advisor/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// StartWorker opens a job worker for taskType unless it is disabled in config.
// The returned worker is nil when disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// commandTimeout bounds the complete, fail and throw calls. They run on their
// own context so a handler that ran out of time can still fail its job.
const commandTimeout = 10 * time.Second

// JobFunc decodes job variables and runs the handler's business logic.
type JobFunc func(ctx context.Context, variables string) (interface{}, error)

// DecodeVariables unmarshals job variables into out. Malformed JSON is a
// business error: retrying the same payload cannot succeed.
func DecodeVariables(variables string, out interface{}) error {
	if variables == "" {
		variables = "{}"
	}
	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

// Runner is the shared Handle implementation: decode, execute under a
// timeout, then complete the job or hand the error to the ErrorHandler.
type Runner struct {
	TaskType     string
	Timeout      time.Duration
	Logger       logger.Logger
	ErrorHandler *errors.ErrorHandler
	Obs          *observability.Observability
}

func NewRunner(taskType string, timeout time.Duration, log logger.Logger, obs *observability.Observability) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{
		TaskType:     taskType,
		Timeout:      timeout,
		Logger:       log,
		ErrorHandler: errors.NewErrorHandler(log),
		Obs:          obs,
	}
}

func (r *Runner) Run(client worker.JobClient, job entities.Job, fn JobFunc) {
	r.Logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	started := time.Now()
	metrics.JobsActive.WithLabelValues(r.TaskType).Inc()
	defer metrics.JobsActive.WithLabelValues(r.TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	output, err := fn(ctx, job.Variables)

	sendCtx, cancelSend := context.WithTimeout(context.Background(), commandTimeout)
	defer cancelSend()

	if err != nil {
		stdErr := r.ErrorHandler.HandleJobError(sendCtx, client, job, err)
		metrics.ObserveJob(r.TaskType, started, string(stdErr.Code))
		r.Obs.RecordJob(sendCtx, r.TaskType, time.Since(started), observability.StatusFailed)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.Logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.ErrorHandler.HandleJobError(sendCtx, client, job, errors.NewInternalError(err))
		metrics.ObserveJob(r.TaskType, started, string(errors.ErrCodeInternal))
		return
	}

	if _, err := cmd.Send(sendCtx); err != nil {
		r.Logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.ObserveJob(r.TaskType, started, "")
	r.Obs.RecordJob(sendCtx, r.TaskType, time.Since(started), observability.StatusCompleted)
	r.Logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.Key,
		"duration": time.Since(started).String(),
	})
}
