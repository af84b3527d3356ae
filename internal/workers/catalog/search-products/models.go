// internal/workers/catalog/search-products/models.go
package searchproducts

import "agro-advisor/internal/models"

type Input struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

type Output struct {
	Products     []models.Product `json:"products"`
	Total        int              `json:"total"`
	Search       string           `json:"search"`
	Category     string           `json:"category"`
	CategoryName string           `json:"categoryName"`
	EmptyMessage string           `json:"emptyMessage,omitempty"`
	Backend      string           `json:"backend"`
	Cached       bool             `json:"cached"`
}
