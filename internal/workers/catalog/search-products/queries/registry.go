// internal/workers/catalog/search-products/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agro-advisor/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

type QueryResult struct {
	Products  []models.Product
	TotalHits int64
	Took      int64
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Execute runs a product query and decodes the hit sources.
func Execute(ctx context.Context, esClient *elasticsearch.Client, pq ProductQuery) (*QueryResult, error) {
	req, err := BuildQuery(pq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}

	return &QueryResult{
		Products:  products,
		TotalHits: r.Hits.Total.Value,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
