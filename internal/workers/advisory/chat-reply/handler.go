package chatreply

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agro-advisor/internal/common/camunda"
	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/latency"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/metrics"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/models"
	"agro-advisor/internal/session"
)

const (
	TaskType = "chat-reply"
)

var (
	ErrEmptyMessage = errors.New("EMPTY_MESSAGE")
)

type Handler struct {
	config   *Config
	sessions *session.Manager
	logger   logger.Logger
	runner   *camunda.Runner
	now      func() time.Time
}

func NewHandler(config *Config, sessions *session.Manager, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		sessions: sessions,
		logger:   log,
		runner:   camunda.NewRunner(TaskType, config.Timeout, log, obs),
		now:      time.Now,
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
	if input == nil || strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewEmptyMessageError().WithCause(ErrEmptyMessage)
	}

	userMsg := models.NewUserMessage(input.Message, h.now().UTC())
	online := input.IsOnline == nil || *input.IsOnline
	voice := false

	if input.SessionID != "" {
		s, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
			s.Transcript = append(s.Transcript, userMsg)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if input.IsOnline == nil {
			online = s.IsOnline
		}
		voice = s.VoiceEnabled
	}

	// the user message stays in the transcript even if the wait is cut short
	if err := latency.Wait(ctx, h.config.Delay); err != nil {
		return nil, apperrors.NewTimeoutError("chat", err)
	}

	text, keyword := Reply(input.Message, online)
	botMsg := models.NewBotMessage(text, ReplySuggestions, h.now().UTC())

	label := keyword
	if label == "" {
		label = "none"
	}
	metrics.ChatKeywordMatches.WithLabelValues(label).Inc()

	output := &Output{
		UserMessage:    userMsg,
		BotMessage:     botMsg,
		MatchedKeyword: keyword,
		Listening:      input.Listening,
	}

	if input.SessionID != "" {
		s, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
			s.Transcript = append(s.Transcript, botMsg)
			return nil
		})
		if err != nil {
			return nil, err
		}
		output.TranscriptLength = len(s.Transcript)
		voice = s.VoiceEnabled
	}

	if voice {
		output.Utterance = Speak(text)
	}

	h.logger.Debug("chat reply", map[string]interface{}{
		"sessionId":      input.SessionID,
		"matchedKeyword": keyword,
		"online":         online,
	})
	return output, nil
}

// Transcript returns the session's messages in order.
func (h *Handler) Transcript(ctx context.Context, sessionID string) ([]models.Message, error) {
	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Transcript, nil
}
