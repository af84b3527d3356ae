package searchproducts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"agro-advisor/internal/catalog"
	"agro-advisor/internal/common/camunda/camundatest"
	"agro-advisor/internal/common/config"
	"agro-advisor/internal/common/database"
	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, CacheTTL: time.Minute}
}

func createTestHandler(t *testing.T, searcher Searcher, cache *database.RedisClient) *Handler {
	return NewHandler(createTestConfig(), catalog.MustDefault(), searcher, cache, observability.NewNoop(), logger.NewTestLogger(t))
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

// fakeElasticsearch serves _search with the given product ids as hits and
// records indexed documents.
type fakeElasticsearch struct {
	mu       sync.Mutex
	hits     []string
	status   int
	lastBody string
	indexed  map[string]bool
	created  bool
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		body, _ := io.ReadAll(r.Body)
		f.lastBody = string(body)
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"type":"parsing_exception"}}`))
			return
		}
		c := catalog.MustDefault()
		type hit struct {
			Source models.Product `json:"_source"`
		}
		resp := map[string]interface{}{}
		var hs []hit
		for _, id := range f.hits {
			p, _ := c.Find(id)
			hs = append(hs, hit{Source: p})
		}
		resp["hits"] = map[string]interface{}{
			"total": map[string]interface{}{"value": len(hs)},
			"hits":  hs,
		}
		_ = json.NewEncoder(w).Encode(resp)
	case r.Method == http.MethodHead:
		if f.created {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && strings.Count(r.URL.Path, "/") == 1:
		f.created = true
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	default:
		parts := strings.Split(r.URL.Path, "/")
		f.indexed[parts[len(parts)-1]] = true
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func newFakeElasticsearch(t *testing.T, fake *fakeElasticsearch) *database.ElasticsearchClient {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestHandler_Execute_Memory(t *testing.T) {
	handler := createTestHandler(t, NewMemorySearcher(catalog.MustDefault()), nil)

	tests := []struct {
		name         string
		input        *Input
		want         []string
		categoryName string
	}{
		{"defaults to all", &Input{}, []string{"1", "2", "3", "4", "5", "6"}, "Todos"},
		{"nil input", nil, []string{"1", "2", "3", "4", "5", "6"}, "Todos"},
		{"brand search", &Input{Search: "CROPGUARD"}, []string{"5"}, "Todos"},
		{"category", &Input{Category: "seed"}, []string{"3", "6"}, "Semillas"},
		{"search within category", &Input{Search: "control", Category: "pesticide"}, []string{"2", "5"}, "Pesticidas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(output.Products))
			assert.Equal(t, len(tt.want), output.Total)
			assert.Equal(t, tt.categoryName, output.CategoryName)
			assert.Empty(t, output.EmptyMessage)
			assert.Equal(t, "memory", output.Backend)
		})
	}
}

func TestHandler_Execute_EmptyResult(t *testing.T) {
	handler := createTestHandler(t, NewMemorySearcher(catalog.MustDefault()), nil)

	output, err := handler.Execute(context.Background(), &Input{Category: "tool"})
	require.NoError(t, err)
	assert.Empty(t, output.Products)
	assert.NotNil(t, output.Products)
	assert.Equal(t, "No se encontraron productos", output.EmptyMessage)
}

func TestHandler_Execute_InvalidCategory(t *testing.T) {
	handler := createTestHandler(t, NewMemorySearcher(catalog.MustDefault()), nil)

	_, err := handler.Execute(context.Background(), &Input{Category: "machinery"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidFilterFormat, apperrors.FromError(err).Code)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestHandler_Execute_RedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	handler := createTestHandler(t, NewMemorySearcher(catalog.MustDefault()), cache)
	ctx := context.Background()

	first, err := handler.Execute(ctx, &Input{Search: "Semilla", Category: "seed"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.True(t, mr.Exists("agro:catalog:seed:semilla"))

	second, err := handler.Execute(ctx, &Input{Search: "semilla", Category: "seed"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, ids(first.Products), ids(second.Products))

	mr.FastForward(2 * time.Minute)
	third, err := handler.Execute(ctx, &Input{Search: "semilla", Category: "seed"})
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestElasticsearchSearcher_AgreesWithMemory(t *testing.T) {
	// the index returns an over-broad hit list; post-filtering trims it
	fake := &fakeElasticsearch{hits: []string{"6", "3", "1"}, indexed: map[string]bool{}}
	client := newFakeElasticsearch(t, fake)

	handler := createTestHandler(t, NewElasticsearchSearcher(client, "agro-products", catalog.MustDefault()), nil)

	output, err := handler.Execute(context.Background(), &Input{Search: "semilla", Category: "seed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "6"}, ids(output.Products))
	assert.Equal(t, "elasticsearch", output.Backend)
	assert.Contains(t, fake.lastBody, `"category":"seed"`)
}

func TestElasticsearchSearcher_Errors(t *testing.T) {
	fake := &fakeElasticsearch{status: http.StatusBadRequest, indexed: map[string]bool{}}
	client := newFakeElasticsearch(t, fake)
	handler := createTestHandler(t, NewElasticsearchSearcher(client, "agro-products", catalog.MustDefault()), nil)

	_, err := handler.Execute(context.Background(), &Input{Search: "x"})
	assert.Equal(t, apperrors.ErrCodeSearchQueryFailed, apperrors.FromError(err).Code)
	assert.ErrorIs(t, err, ErrSearchFailed)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	down, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: url})
	require.NoError(t, err)
	handler = createTestHandler(t, NewElasticsearchSearcher(down, "agro-products", catalog.MustDefault()), nil)

	_, err = handler.Execute(context.Background(), &Input{Search: "x"})
	assert.Equal(t, apperrors.ErrCodeElasticsearchConnectionFailed, apperrors.FromError(err).Code)
}

func TestIndexCatalog(t *testing.T) {
	fake := &fakeElasticsearch{indexed: map[string]bool{}}
	client := newFakeElasticsearch(t, fake)

	require.NoError(t, IndexCatalog(context.Background(), client, "agro-products", catalog.MustDefault()))
	assert.True(t, fake.created)
	assert.Len(t, fake.indexed, 6)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "agro:catalog:all:", CacheKey("all", ""))
	assert.Equal(t, "agro:catalog:seed:maíz", CacheKey("seed", "MAÍZ"))
}

func TestHandler_Handle(t *testing.T) {
	handler := createTestHandler(t, NewMemorySearcher(catalog.MustDefault()), nil)
	client := camundatest.NewJobClient()

	handler.Handle(client, camundatest.NewJob(1, TaskType, map[string]interface{}{"search": "urea"}))
	require.Len(t, client.Gateway.Completed, 1)

	var output Output
	require.NoError(t, client.CompletedVariables(0, &output))
	assert.Equal(t, []string{"4"}, ids(output.Products))

	handler.Handle(client, camundatest.NewJob(2, TaskType, map[string]interface{}{"category": "x"}))
	require.Len(t, client.Gateway.Thrown, 1)
	assert.Equal(t, "INVALID_FILTER_FORMAT", client.Gateway.Thrown[0].ErrorCode)
}
