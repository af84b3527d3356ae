package searchproducts

import (
	"context"
	"fmt"

	"agro-advisor/internal/catalog"
	"agro-advisor/internal/common/database"
	"agro-advisor/internal/models"
	"agro-advisor/internal/workers/catalog/search-products/queries"
)

// Searcher returns the products matching search within category, in
// catalog order.
type Searcher interface {
	Search(ctx context.Context, search, category string) ([]models.Product, error)
	Name() string
}

type MemorySearcher struct {
	catalog *catalog.Catalog
}

func NewMemorySearcher(c *catalog.Catalog) *MemorySearcher {
	return &MemorySearcher{catalog: c}
}

func (s *MemorySearcher) Search(_ context.Context, search, category string) ([]models.Product, error) {
	return s.catalog.Filter(search, category), nil
}

func (s *MemorySearcher) Name() string { return "memory" }

// ElasticsearchSearcher queries the product index and keeps only hits that
// also pass the in-memory rule, so both backends return the same products.
type ElasticsearchSearcher struct {
	client  *database.ElasticsearchClient
	index   string
	catalog *catalog.Catalog
}

func NewElasticsearchSearcher(client *database.ElasticsearchClient, index string, c *catalog.Catalog) *ElasticsearchSearcher {
	return &ElasticsearchSearcher{client: client, index: index, catalog: c}
}

func (s *ElasticsearchSearcher) Search(ctx context.Context, search, category string) ([]models.Product, error) {
	result, err := queries.Execute(ctx, s.client.Client, queries.ProductQuery{
		Index:    s.index,
		Search:   search,
		Category: category,
	})
	if err != nil {
		return nil, err
	}

	hits := make(map[string]bool, len(result.Products))
	for _, p := range result.Products {
		hits[p.ID] = true
	}

	out := make([]models.Product, 0, len(hits))
	for _, p := range s.catalog.Filter(search, category) {
		if hits[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ElasticsearchSearcher) Name() string { return "elasticsearch" }

// IndexCatalog creates the product index when missing and upserts every product.
func IndexCatalog(ctx context.Context, client *database.ElasticsearchClient, index string, c *catalog.Catalog) error {
	if err := client.EnsureIndex(ctx, index, queries.ProductMapping()); err != nil {
		return fmt.Errorf("ensure product index: %w", err)
	}
	for _, p := range c.All() {
		if err := client.IndexDocument(ctx, index, p.ID, p); err != nil {
			return err
		}
	}
	return nil
}
