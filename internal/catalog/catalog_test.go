package catalog

import (
	"testing"

	"agro-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.All(), 6)
	assert.Equal(t, []string{"AgroTech", "EcoFarm", "SeedMaster", "FertilMax", "CropGuard"}, c.Brands())
	assert.Equal(t, "Fertilizantes", c.CategoryName(models.CategoryFertilizer))
	assert.Equal(t, "Herramientas", c.CategoryName(models.CategoryTool))

	p, ok := c.Find("4")
	require.True(t, ok)
	assert.Equal(t, "Urea Granulada 46%", p.Name)
	assert.InDelta(t, 28.75, p.Price, 0.001)

	_, ok = c.Find("99")
	assert.False(t, ok)
}

func TestCatalog_Filter(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{"everything", "", models.CategoryAll, []string{"1", "2", "3", "4", "5", "6"}},
		{"by name, case insensitive", "semilla", models.CategoryAll, []string{"3", "6"}},
		{"by brand", "ecofarm", models.CategoryAll, []string{"2"}},
		{"by description", "sequía", models.CategoryAll, []string{"3"}},
		{"category tab", "", models.CategoryPesticide, []string{"2", "5"}},
		{"search and category", "fertilizante", models.CategoryFertilizer, []string{"1", "4"}},
		{"no match", "tractor", models.CategoryAll, []string{}},
		{"empty tool tab", "", models.CategoryTool, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Filter(tt.search, tt.category)))
		})
	}
}

func TestCatalog_FilterOnlyReturnsMatches(t *testing.T) {
	c := MustDefault()
	for _, search := range []string{"a", "pro", "control", "46"} {
		for _, cat := range c.Categories() {
			for _, p := range c.Filter(search, cat.ID) {
				assert.True(t, Matches(p, search, cat.ID), "%s/%s returned %s", search, cat.ID, p.ID)
			}
		}
	}
}

func TestCatalog_Selected(t *testing.T) {
	c := MustDefault()

	products, total := c.Selected([]string{"4", "1"})
	assert.Equal(t, []string{"1", "4"}, ids(products))
	assert.InDelta(t, 74.74, total, 0.0001)

	products, total = c.Selected(nil)
	assert.Empty(t, products)
	assert.Zero(t, total)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("products: [{id: '1', category: tool}]"))
	assert.Error(t, err, "unknown category without category list")

	_, err = Parse([]byte(`
categories: [{id: seed, name: Semillas}]
products:
  - {id: "1", category: seed}
  - {id: "1", category: seed}
`))
	assert.Error(t, err)

	_, err = Parse([]byte("products: ["))
	assert.Error(t, err)
}
