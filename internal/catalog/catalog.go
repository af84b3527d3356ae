// Package catalog holds the read-only product reference data and the
// substring filter shared by every search backend.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"sync"

	"agro-advisor/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var productsYAML []byte

const EmptyMessage = "No se encontraron productos"

const SelectionHint = "Selecciona productos para simular su impacto en el cultivo"

type document struct {
	Categories    []models.Category `yaml:"categories"`
	PartnerBrands []string          `yaml:"partnerBrands"`
	Products      []models.Product  `yaml:"products"`
}

// Catalog is immutable after Load and safe for concurrent use.
type Catalog struct {
	categories []models.Category
	brands     []string
	products   []models.Product
	byID       map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(productsYAML)
	})
	return defaultCatalog, defaultErr
}

func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		categories: doc.Categories,
		brands:     doc.PartnerBrands,
		products:   doc.Products,
		byID:       make(map[string]int, len(doc.Products)),
	}
	for i, p := range doc.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("parse catalog: product %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate product id %q", p.ID)
		}
		if !c.IsCategory(p.Category) || p.Category == models.CategoryAll {
			return nil, fmt.Errorf("parse catalog: product %q has unknown category %q", p.ID, p.Category)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// All returns the products in catalog order.
func (c *Catalog) All() []models.Product {
	return append([]models.Product(nil), c.products...)
}

func (c *Catalog) Find(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

func (c *Catalog) Brands() []string {
	return append([]string(nil), c.brands...)
}

func (c *Catalog) IsCategory(id string) bool {
	for _, cat := range c.categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) CategoryName(id string) string {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}

// Matches reports whether p passes the search text and category tab.
// The search is a case-insensitive substring of name, brand or description;
// an empty search matches everything.
func Matches(p models.Product, search, category string) bool {
	if category != models.CategoryAll && category != "" && p.Category != category {
		return false
	}
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Filter applies Matches over the catalog, preserving catalog order.
func (c *Catalog) Filter(search, category string) []models.Product {
	return FilterProducts(c.products, search, category)
}

func FilterProducts(products []models.Product, search, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, search, category) {
			out = append(out, p)
		}
	}
	return out
}

// Selected returns the products whose ids are in ids, in catalog order,
// and their total price rounded to cents.
func (c *Catalog) Selected(ids []string) ([]models.Product, float64) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	out := make([]models.Product, 0, len(ids))
	total := 0.0
	for _, p := range c.products {
		if want[p.ID] {
			out = append(out, p)
			total += p.Price
		}
	}
	return out, math.Round(total*100) / 100
}
