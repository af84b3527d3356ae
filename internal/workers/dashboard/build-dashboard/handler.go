package builddashboard

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
	chatreply "agro-advisor/internal/workers/advisory/chat-reply"
)

const (
	TaskType = "build-dashboard"
)

type Handler struct {
	config   *Config
	sessions *session.Manager
	tips     *TipBoard
	logger   logger.Logger
	runner   *camunda.Runner
}

func NewHandler(config *Config, sessions *session.Manager, tips *TipBoard, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		sessions: sessions,
		tips:     tips,
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

// execute assembles the dashboard tab. Without a session the header shows
// the page-load defaults.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	s := models.NewSession("", time.Now().UTC(), 0)
	if input != nil && input.SessionID != "" {
		loaded, err := h.sessions.Get(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	return &Output{
		Header: Header{
			App:             AppName,
			Tagline:         Tagline,
			Tabs:            append([]Tab(nil), tabs...),
			CurrentLocation: s.CurrentLocation,
			IsOnline:        s.IsOnline,
			OnlineLabel:     s.OnlineLabel(),
			VoiceEnabled:    s.VoiceEnabled,
		},
		QuickStats:           append([]Stat(nil), quickStats...),
		CurrentConditions:    append([]Condition(nil), currentConditions...),
		DailyRecommendations: append([]Recommendation(nil), dailyRecommendations...),
		UpcomingTasks:        append([]string(nil), upcomingTasks...),
		Tutorials:            append([]Tutorial(nil), tutorials...),
		TipsOfTheDay:         h.tips.Featured(),
		FrequentQuestions:    append([]string(nil), chatreply.FrequentQuestions...),
		SelectedProducts:     len(s.SelectedProducts),
		LastSimulation:       s.LastSimulation,
	}, nil
}
