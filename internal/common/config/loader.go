package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	CatalogBackendMemory        = "memory"
	CatalogBackendElasticsearch = "elasticsearch"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// APP_SERVER_ADDRESS style overrides
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // environment file is optional

	return finish(v)
}

func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

// setDefaults registers values that must survive an absent key but may be
// overridden with zero, such as the mock delays.
func setDefaults(v *viper.Viper) {
	v.SetDefault("mock.chat_delay", 1000)
	v.SetDefault("mock.simulation_delay", 2000)
	v.SetDefault("mock.location_delay", 2000)
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("catalog.backend", CatalogBackendMemory)
	v.SetDefault("logging.level", "info")
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Telegram.Token == "" {
		if val := os.Getenv("TELEGRAM_BOT_TOKEN"); val != "" {
			cfg.Telegram.Token = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
	if cfg.Database.Elasticsearch.Password == "" {
		if val := os.Getenv("ELASTICSEARCH_PASSWORD"); val != "" {
			cfg.Database.Elasticsearch.Password = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "agro-advisor"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "0.1.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Session.Backend == "" {
		cfg.Session.Backend = SessionBackendMemory
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = int((2 * time.Hour).Milliseconds())
	}

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if cfg.Catalog.Backend == "" {
		cfg.Catalog.Backend = CatalogBackendMemory
	}
	if cfg.Catalog.Index == "" {
		cfg.Catalog.Index = "agro-products"
	}

	// Zero delays are legitimate (tests, CLI --no-delay); only negatives are reset.
	if cfg.Mock.ChatDelay < 0 {
		cfg.Mock.ChatDelay = 1000
	}
	if cfg.Mock.SimulationDelay < 0 {
		cfg.Mock.SimulationDelay = 2000
	}
	if cfg.Mock.LocationDelay < 0 {
		cfg.Mock.LocationDelay = 2000
	}

	if cfg.Dashboard.TipSchedule == "" {
		cfg.Dashboard.TipSchedule = "0 6 * * *"
	}
	if cfg.Dashboard.TipsPerDay == 0 {
		cfg.Dashboard.TipsPerDay = 2
	}

	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Workers == nil {
		cfg.Workers = make(map[string]WorkerConfig)
	}
	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required when session.backend is redis")
		}
	default:
		return fmt.Errorf("session.backend must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, cfg.Session.Backend)
	}

	switch cfg.Catalog.Backend {
	case CatalogBackendMemory:
	case CatalogBackendElasticsearch:
		if cfg.Database.Elasticsearch.GetURL() == "" {
			return fmt.Errorf("database.elasticsearch.addresses or url is required when catalog.backend is elasticsearch")
		}
	default:
		return fmt.Errorf("catalog.backend must be %q or %q, got %q",
			CatalogBackendMemory, CatalogBackendElasticsearch, cfg.Catalog.Backend)
	}

	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda.enabled is true")
	}

	if cfg.Telegram.Enabled && cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required when telegram.enabled is true")
	}

	if cfg.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	return nil
}

// GetDuration converts milliseconds to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig returns the worker configuration, enabled with defaults when absent.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
		MaxRetries:    3,
	}
}
