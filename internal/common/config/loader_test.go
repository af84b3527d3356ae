package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.ListenAddress())
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTLDuration())
	assert.Equal(t, CatalogBackendMemory, cfg.Catalog.Backend)
	assert.Equal(t, "agro-products", cfg.Catalog.Index)
	assert.Equal(t, 1000, cfg.Mock.ChatDelay)
	assert.Equal(t, 2000, cfg.Mock.SimulationDelay)
	assert.Equal(t, 2000, cfg.Mock.LocationDelay)
	assert.Equal(t, "0 6 * * *", cfg.Dashboard.TipSchedule)
	assert.Equal(t, 2, cfg.Dashboard.TipsPerDay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_ZeroDelayIsKept(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "mock:\n  chat_delay: 0\n  simulation_delay: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Mock.ChatDelay)
	assert.Zero(t, cfg.Mock.SimulationDelay)
	assert.Equal(t, 2000, cfg.Mock.LocationDelay)
}

func TestLoadFromFile_EnvOverridesAndExpansion(t *testing.T) {
	t.Setenv("MOCK_CHAT_DELAY", "250")
	t.Setenv("AGRO_TEST_TOKEN", "123:abc")

	cfg, err := LoadFromFile(writeConfig(t, "telegram:\n  enabled: true\n  token: ${AGRO_TEST_TOKEN}\n"))
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Mock.ChatDelay)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
}

func TestLoadFromFile_UnsetVariableExpandsToEmpty(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "database:\n  redis:\n    password: ${AGRO_TEST_UNSET_PASSWORD}\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.Redis.Password)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown session backend", "session:\n  backend: disk\n", "session.backend"},
		{"redis without address", "session:\n  backend: redis\n", "database.redis.address"},
		{"elasticsearch without url", "catalog:\n  backend: elasticsearch\n", "database.elasticsearch"},
		{"camunda without broker", "camunda:\n  enabled: true\n", "camunda.broker_address"},
		{"telegram without token", "telegram:\n  enabled: true\n", "telegram.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{
		Camunda: CamundaConfig{MaxJobsActive: 7, Timeout: 1234},
		Workers: map[string]WorkerConfig{"chat-reply": {Enabled: false, Timeout: 10}},
	}

	assert.Equal(t, WorkerConfig{Enabled: false, Timeout: 10}, GetWorkerConfig(cfg, "chat-reply"))

	fallback := GetWorkerConfig(cfg, "simulate-crop")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 7, fallback.MaxJobsActive)
	assert.Equal(t, 1234, fallback.Timeout)
}
