package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex = errors.New("index name is required")
	ErrSearchFailed = errors.New("search query failed")
)

// MaxResults bounds a catalog search; the catalog is small.
const MaxResults = 100

// ProductQuery is one catalog search against an index.
type ProductQuery struct {
	Index    string
	Search   string
	Category string
}

// BuildQuery builds the search request for a product query.
func BuildQuery(pq ProductQuery) (*esapi.SearchRequest, error) {
	if pq.Index == "" {
		return nil, ErrMissingIndex
	}

	body, err := json.Marshal(BuildProductSearchQuery(pq.Search, pq.Category))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	size := MaxResults
	req := esapi.SearchRequest{
		Index: []string{pq.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	return &req, nil
}

// BuildProductSearchQuery matches the search text as a phrase prefix or an
// infix wildcard on name, brand and description, and filters on category
// unless it is "all".
func BuildProductSearchQuery(search, category string) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	filterClauses := []interface{}{}

	term := strings.ToLower(strings.TrimSpace(search))
	if term != "" {
		should := []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  term,
					"fields": []string{"name^3", "brand^2", "description"},
					"type":   "phrase_prefix",
				},
			},
		}
		for _, field := range []string{"name.raw", "brand.raw", "description.raw"} {
			should = append(should, map[string]interface{}{
				"wildcard": map[string]interface{}{
					field: map[string]interface{}{
						"value":            "*" + term + "*",
						"case_insensitive": true,
					},
				},
			})
		}
		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = 1
	}

	if category != "" && category != "all" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": category},
		})
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	if len(boolQuery) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

// ProductMapping is the index mapping for catalog documents. The raw
// subfields keep the untokenised text for infix wildcards.
func ProductMapping() map[string]interface{} {
	textWithRaw := func() map[string]interface{} {
		return map[string]interface{}{
			"type": "text",
			"fields": map[string]interface{}{
				"raw": map[string]interface{}{"type": "keyword"},
			},
		}
	}
	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":          map[string]interface{}{"type": "keyword"},
				"name":        textWithRaw(),
				"brand":       textWithRaw(),
				"description": textWithRaw(),
				"category":    map[string]interface{}{"type": "keyword"},
				"price":       map[string]interface{}{"type": "float"},
				"rating":      map[string]interface{}{"type": "float"},
				"benefits":    map[string]interface{}{"type": "text"},
				"usage":       map[string]interface{}{"type": "text"},
				"image":       map[string]interface{}{"type": "keyword", "index": false},
			},
		},
	}
}
