package simulatecrop

import (
	"context"
	"errors"
	"math"
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
	"agro-advisor/internal/common/random"
	"agro-advisor/internal/common/validation"
	"agro-advisor/internal/models"
	"agro-advisor/internal/session"
	"agro-advisor/pkg/registry"
)

const (
	TaskType = "simulate-crop"
)

var (
	ErrValidationFailed = errors.New("SIMULATION_VALIDATION_FAILED")
)

type Handler struct {
	config   *Config
	sessions *session.Manager
	rng      random.Source
	schema   *validation.Schema
	logger   logger.Logger
	runner   *camunda.Runner
}

func NewHandler(config *Config, sessions *session.Manager, rng random.Source, obs *observability.Observability, log logger.Logger) *Handler {
	schema, err := registry.MustDefault().InputSchema(TaskType)
	if err != nil {
		panic(err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		sessions: sessions,
		rng:      rng,
		schema:   validation.MustSchema(schema),
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
	if input == nil {
		return nil, apperrors.NewSimulationValidationFailedError("input is required").WithCause(ErrValidationFailed)
	}
	if err := h.validate(input); err != nil {
		return nil, err
	}

	if input.SessionID != "" {
		if _, err := h.sessions.Get(ctx, input.SessionID); err != nil {
			return nil, err
		}
	}

	if err := latency.Wait(ctx, h.config.Delay); err != nil {
		return nil, apperrors.NewTimeoutError("simulator", err)
	}

	result := Simulate(input.Area, h.rng)

	if input.SessionID != "" {
		_, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
			r := result
			s.LastSimulation = &r
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	h.logger.Debug("simulation finished", map[string]interface{}{
		"crop":      input.Crop,
		"area":      input.Area,
		"viability": result.Viability,
	})
	return &Output{Request: input.SimulationRequest, Result: result}, nil
}

func (h *Handler) validate(input *Input) error {
	result, err := h.schema.Validate(input)
	if err != nil {
		return apperrors.NewSimulationValidationFailedError(err.Error()).WithCause(ErrValidationFailed)
	}
	if !result.Valid {
		return apperrors.NewSimulationValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")).
			WithCause(ErrValidationFailed)
	}
	return nil
}

// MaxArea is the largest area, in hectares, the input schema accepts. It keeps
// every money field well inside the int range.
const MaxArea = 1e6

// roundHalfUp rounds halves toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Simulate draws a mock result for area hectares, 0 < area <= MaxArea. Draw
// order is viability, yield, profitability, investment, revenue.
func Simulate(area float64, rng random.Source) models.SimulationResult {
	viability := rng.Float64()*30 + 60
	baseYield := area * (rng.Float64()*5 + 8)
	profitability := rng.Float64()*40 + 40
	investment := area * (rng.Float64()*2000 + 3000)
	revenue := baseYield * (rng.Float64()*200 + 300)

	v := int(roundHalfUp(viability))
	return models.SimulationResult{
		Viability:       v,
		ExpectedYield:   roundHalfUp(baseYield*100) / 100,
		Profitability:   int(roundHalfUp(profitability)),
		Investment:      int(roundHalfUp(investment)),
		Revenue:         int(roundHalfUp(revenue)),
		Profit:          int(roundHalfUp(revenue - investment)),
		Risks:           append([]string(nil), Risks...),
		Recommendations: append([]string(nil), Recommendations...),
		Rating:          Rating(v),
	}
}
