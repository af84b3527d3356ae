// internal/workers/advisory/chat-reply/config.go
package chatreply

import (
	"time"

	"agro-advisor/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Delay   time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Delay:   config.GetDuration(cfg.Mock.ChatDelay),
	}
}
