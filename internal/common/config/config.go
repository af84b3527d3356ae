// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Server    ServerConfig            `mapstructure:"server"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Session   SessionConfig           `mapstructure:"session"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Catalog   CatalogConfig           `mapstructure:"catalog"`
	Mock      MockConfig              `mapstructure:"mock"`
	Dashboard DashboardConfig         `mapstructure:"dashboard"`
	Telegram  TelegramConfig          `mapstructure:"telegram"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Logging   LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// SessionConfig selects where per-visitor view state lives.
type SessionConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "redis"
	TTL     int    `mapstructure:"ttl"`     // milliseconds
}

func (s SessionConfig) TTLDuration() time.Duration {
	return GetDuration(s.TTL)
}

type DatabaseConfig struct {
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CatalogConfig controls the product search backend.
type CatalogConfig struct {
	Backend  string `mapstructure:"backend"` // "memory" or "elasticsearch"
	Index    string `mapstructure:"index"`
	CacheTTL int    `mapstructure:"cache_ttl"` // milliseconds, 0 disables caching
}

// MockConfig holds the fixed latencies and RNG seed used by the mocked views.
type MockConfig struct {
	ChatDelay       int   `mapstructure:"chat_delay"`       // milliseconds
	SimulationDelay int   `mapstructure:"simulation_delay"` // milliseconds
	LocationDelay   int   `mapstructure:"location_delay"`   // milliseconds
	Seed            int64 `mapstructure:"seed"`             // 0 = time based
}

type DashboardConfig struct {
	TipSchedule string `mapstructure:"tip_schedule"`
	TipsPerDay  int    `mapstructure:"tips_per_day"`
}

type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"` // seconds, long-poll timeout
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Address returns host:port for the HTTP listener, falling back to :8080.
func (s ServerConfig) ListenAddress() string {
	if s.Address == "" {
		return ":8080"
	}
	return s.Address
}

func (c *Config) String() string {
	return fmt.Sprintf("%s@%s (%s) session=%s catalog=%s camunda=%t telegram=%t",
		c.App.Name, c.App.Version, c.App.Environment,
		c.Session.Backend, c.Catalog.Backend, c.Camunda.Enabled, c.Telegram.Enabled)
}
