package container

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betpromo/internal/config"
	"betpromo/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "8080",
		Environment:          "production",
		PocketBaseURL:        "http://127.0.0.1:8090",
		JWTSecret:            "test-secret",
		SessionMaxAge:        12,
		RevenuePerConversion: 15,
		CurrencyRate:         655,
	}
}

func newContainerLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "development")
	require.NoError(t, err)
	return log
}

func TestNewWithoutRedis(t *testing.T) {
	deps, err := New(testConfig(), newContainerLogger(t))
	require.NoError(t, err)
	require.NotNil(t, deps)

	assert.NotNil(t, deps.PocketBase)
	assert.NotNil(t, deps.Repos)
	assert.NotNil(t, deps.Store)
	assert.NotNil(t, deps.Sessions)
	assert.NotNil(t, deps.Traffic)
	assert.NotNil(t, deps.Mailer)
	assert.NotNil(t, deps.Cache)
	assert.NotNil(t, deps.Reports)

	assert.Nil(t, deps.RedisClient)
	assert.False(t, deps.HasRedis())
}

func TestNewWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig()
	cfg.RedisURL = "redis://" + mr.Addr()

	deps, err := New(cfg, newContainerLogger(t))
	require.NoError(t, err)
	require.NotNil(t, deps.RedisClient)
	assert.True(t, deps.HasRedis())
	assert.Equal(t, "prod", deps.RedisClient.KeyBuilder.GetPrefix())
}

func TestNewToleratesRedisFailure(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "invalid://redis-url"

	// A broken Redis URL degrades to the cacheless path instead of failing
	deps, err := New(cfg, newContainerLogger(t))
	require.NoError(t, err)
	assert.Nil(t, deps.RedisClient)
	assert.False(t, deps.HasRedis())
}

func TestContainerAccessors(t *testing.T) {
	cfg := testConfig()
	log := newContainerLogger(t)

	deps, err := New(cfg, log)
	require.NoError(t, err)

	assert.Equal(t, cfg, deps.GetConfig())
	assert.Equal(t, log, deps.GetLogger())
	assert.Equal(t, deps.Store, deps.GetStore())
}

func TestStoreStartsUnloaded(t *testing.T) {
	deps, err := New(testConfig(), newContainerLogger(t))
	require.NoError(t, err)

	loaded, _ := deps.Store.Loaded()
	assert.False(t, loaded)
}
