// internal/workers/catalog/toggle-product-selection/models.go
package toggleproductselection

import "agro-advisor/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
}

// Selection is the "Productos Seleccionados" panel.
type Selection struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
	Total    float64          `json:"total"`
	Hint     string           `json:"hint,omitempty"`
}

type Output struct {
	ProductID string    `json:"productId"`
	Selected  bool      `json:"selected"`
	Selection Selection `json:"selection"`
}
