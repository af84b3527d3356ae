package toggleconnectivity

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agro-advisor/internal/common/camunda"
	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/metrics"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/models"
	"agro-advisor/internal/session"
)

const (
	TaskType = "toggle-connectivity"
)

type Handler struct {
	config   *Config
	sessions *session.Manager
	logger   logger.Logger
	runner   *camunda.Runner
}

func NewHandler(config *Config, sessions *session.Manager, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		sessions: sessions,
		logger:   log,
		runner:   camunda.NewRunner(TaskType, config.Timeout, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, variables string) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(variables, &input); err != nil {
			return nil, err
		}
		return h.execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	started := time.Now()
	output, err := h.execute(ctx, input)
	metrics.ObserveJob(TaskType, started, apperrors.CodeOf(err))
	return output, err
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.SessionID == "" {
		return nil, apperrors.NewInvalidInputError("sessionId is required")
	}

	s, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
		s.IsOnline = !s.IsOnline
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("connectivity toggled", map[string]interface{}{
		"sessionId": input.SessionID,
		"isOnline":  s.IsOnline,
	})
	return &Output{IsOnline: s.IsOnline, Label: s.OnlineLabel()}, nil
}
