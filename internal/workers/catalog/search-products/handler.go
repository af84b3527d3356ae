package searchproducts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agro-advisor/internal/catalog"
	"agro-advisor/internal/common/camunda"
	"agro-advisor/internal/common/database"
	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/metrics"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/models"
	"agro-advisor/internal/workers/catalog/search-products/queries"
)

const (
	TaskType = "search-products"
)

var (
	ErrInvalidCategory = errors.New("INVALID_FILTER_FORMAT")
	ErrSearchFailed    = errors.New("SEARCH_QUERY_FAILED")
)

type Handler struct {
	config   *Config
	catalog  *catalog.Catalog
	searcher Searcher
	cache    *database.RedisClient
	logger   logger.Logger
	runner   *camunda.Runner
}

// NewHandler wires a search handler. cache may be nil.
func NewHandler(config *Config, c *catalog.Catalog, searcher Searcher, cache *database.RedisClient, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		catalog:  c,
		searcher: searcher,
		cache:    cache,
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
		input = &Input{}
	}
	category := input.Category
	if category == "" {
		category = models.CategoryAll
	}
	if !h.catalog.IsCategory(category) {
		return nil, apperrors.NewInvalidFilterFormatError(fmt.Sprintf("unknown category %q", input.Category)).
			WithCause(ErrInvalidCategory)
	}

	products, cached, err := h.search(ctx, input.Search, category)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Products:     products,
		Total:        len(products),
		Search:       input.Search,
		Category:     category,
		CategoryName: h.catalog.CategoryName(category),
		Backend:      h.searcher.Name(),
		Cached:       cached,
	}
	if len(products) == 0 {
		output.EmptyMessage = catalog.EmptyMessage
	}
	return output, nil
}

func (h *Handler) search(ctx context.Context, search, category string) ([]models.Product, bool, error) {
	key := CacheKey(category, search)

	if h.cache != nil && h.config.CacheTTL > 0 {
		var products []models.Product
		err := h.cache.GetJSON(ctx, key, &products)
		if err == nil {
			return products, true, nil
		}
		if !errors.Is(err, database.ErrCacheMiss) {
			h.logger.Warn("catalog cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	products, err := h.searcher.Search(ctx, search, category)
	if err != nil {
		return nil, false, h.mapSearchError(ctx, err)
	}

	if h.cache != nil && h.config.CacheTTL > 0 {
		if err := h.cache.SetJSON(ctx, key, products, h.config.CacheTTL); err != nil {
			h.logger.Warn("catalog cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return products, false, nil
}

func (h *Handler) mapSearchError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return apperrors.NewTimeoutError("catalog search", err)
	}
	if errors.Is(err, queries.ErrMissingIndex) || errors.Is(err, queries.ErrSearchFailed) {
		return apperrors.NewSearchQueryFailedError("product_search", fmt.Errorf("%w: %v", ErrSearchFailed, err))
	}
	return apperrors.NewElasticsearchConnectionFailedError(err)
}

// CacheKey is the Redis key of a cached search. The filter is
// case-insensitive so the search text is lowercased.
func CacheKey(category, search string) string {
	return fmt.Sprintf("agro:catalog:%s:%s", category, strings.ToLower(search))
}
