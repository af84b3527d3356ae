package lookuplocation

import (
	"context"
	"errors"
	"fmt"
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
	TaskType = "lookup-location"
)

var (
	ErrGeolocationDenied      = errors.New("GEOLOCATION_DENIED")
	ErrGeolocationUnsupported = errors.New("GEOLOCATION_UNSUPPORTED")
	ErrEmptyQuery             = errors.New("EMPTY_LOCATION_QUERY")
	ErrInvalidCoordinates     = errors.New("INVALID_COORDINATES")
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
		return nil, apperrors.NewInvalidInputError("input is required")
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
		return nil, apperrors.NewTimeoutError("location", err)
	}

	var data models.LocationData
	switch input.Mode {
	case ModeDevice:
		data.Coordinates = *input.Coordinates
		data.Address = fmt.Sprintf("%.4f, %.4f", input.Coordinates.Lat, input.Coordinates.Lng)
	case ModeSearch:
		data.Coordinates = models.Coordinates{
			Lat: h.rng.Float64()*180 - 90,
			Lng: h.rng.Float64()*360 - 180,
		}
		data.Address = input.Query
	}
	data.Climate, data.SoilType, data.Elevation = MockClimate(h.rng)
	data.Timezone = Timezone

	output := &Output{
		Location:        data,
		Recommendations: Recommend(data.Climate),
		CurrentLocation: data.Address,
	}
	if len(output.Recommendations) == 0 {
		output.Summary = FavorableSummary
	}

	if input.SessionID != "" {
		_, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
			loc := data
			s.CurrentLocation = data.Address
			s.LastLocation = &loc
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	h.logger.Debug("location resolved", map[string]interface{}{
		"mode":    input.Mode,
		"address": data.Address,
	})
	return output, nil
}

// validate applies the browser's failure order: unsupported, denied, then
// the coordinate ranges. Search mode only needs a non-blank query.
func (h *Handler) validate(input *Input) error {
	result, err := h.schema.Validate(input)
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return apperrors.NewInvalidInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	switch input.Mode {
	case ModeDevice:
		if input.Permission == PermissionUnsupported {
			return apperrors.NewGeolocationUnsupportedError().WithCause(ErrGeolocationUnsupported)
		}
		if input.Permission == PermissionDenied {
			return apperrors.NewGeolocationDeniedError().WithCause(ErrGeolocationDenied)
		}
		if input.Coordinates == nil {
			return apperrors.NewGeolocationUnsupportedError().WithCause(ErrGeolocationUnsupported)
		}
		lat, lng := input.Coordinates.Lat, input.Coordinates.Lng
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return apperrors.NewInvalidCoordinatesError(lat, lng).WithCause(ErrInvalidCoordinates)
		}
	case ModeSearch:
		if strings.TrimSpace(input.Query) == "" {
			return apperrors.NewEmptyLocationQueryError().WithCause(ErrEmptyQuery)
		}
	}
	return nil
}
