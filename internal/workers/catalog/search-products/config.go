// internal/workers/catalog/search-products/config.go
package searchproducts

import (
	"time"

	"agro-advisor/internal/common/config"
)

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:  config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		CacheTTL: config.GetDuration(cfg.Catalog.CacheTTL),
	}
}
