package toggleproductselection

import (
	"context"
	"errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agro-advisor/internal/catalog"
	"agro-advisor/internal/common/camunda"
	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/metrics"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/models"
	"agro-advisor/internal/session"
)

const (
	TaskType = "toggle-product-selection"
)

var (
	ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")
)

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	sessions *session.Manager
	logger   logger.Logger
	runner   *camunda.Runner
}

func NewHandler(config *Config, c *catalog.Catalog, sessions *session.Manager, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  c,
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
	if _, ok := h.catalog.Find(input.ProductID); !ok {
		return nil, apperrors.NewProductNotFoundError(input.ProductID).WithCause(ErrProductNotFound)
	}

	var selected bool
	s, err := h.sessions.Update(ctx, input.SessionID, func(s *models.Session) error {
		selected = s.ToggleProduct(input.ProductID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("product selection toggled", map[string]interface{}{
		"sessionId": input.SessionID,
		"productId": input.ProductID,
		"selected":  selected,
	})

	return &Output{
		ProductID: input.ProductID,
		Selected:  selected,
		Selection: h.selection(s.SelectedProducts),
	}, nil
}

// Selected returns the session's selected products in catalog order.
func (h *Handler) Selected(ctx context.Context, sessionID string) (*Selection, error) {
	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel := h.selection(s.SelectedProducts)
	return &sel, nil
}

func (h *Handler) selection(ids []string) Selection {
	products, total := h.catalog.Selected(ids)
	sel := Selection{Products: products, Count: len(products), Total: total}
	if len(products) == 0 {
		sel.Hint = catalog.SelectionHint
	}
	return sel
}
