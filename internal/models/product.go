package models

const (
	CategoryAll        = "all"
	CategoryFertilizer = "fertilizer"
	CategoryPesticide  = "pesticide"
	CategorySeed       = "seed"
	CategoryTool       = "tool"
)

type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Brand       string   `json:"brand" yaml:"brand"`
	Category    string   `json:"category" yaml:"category"`
	Price       float64  `json:"price" yaml:"price"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Description string   `json:"description" yaml:"description"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
	Usage       string   `json:"usage" yaml:"usage"`
	Image       string   `json:"image" yaml:"image"`
}

type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
