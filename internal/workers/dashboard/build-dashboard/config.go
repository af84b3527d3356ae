// internal/workers/dashboard/build-dashboard/config.go
package builddashboard

import (
	"time"

	"agro-advisor/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	TipsPerDay int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:    config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		TipsPerDay: cfg.Dashboard.TipsPerDay,
	}
}
