package togglevoice

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
	TaskType = "toggle-voice"

	ActivationText = "Asistente de voz activado. Ahora puedes escuchar las respuestas del chatbot y los tutoriales."
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

// execute flips the voice flag. Only switching it on is announced.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.SessionID == "" {
		return nil, apperrors.NewInvalidInputError("sessionId is required")
	}

	s, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
		s.VoiceEnabled = !s.VoiceEnabled
		return nil
	})
	if err != nil {
		return nil, err
	}

	output := &Output{VoiceEnabled: s.VoiceEnabled, Label: Label(s.VoiceEnabled)}
	if s.VoiceEnabled {
		output.Utterance = models.NewUtterance(ActivationText)
	}

	h.logger.Debug("voice toggled", map[string]interface{}{
		"sessionId":    input.SessionID,
		"voiceEnabled": s.VoiceEnabled,
	})
	return output, nil
}

func Label(enabled bool) string {
	if enabled {
		return "Voz On"
	}
	return "Voz Off"
}
