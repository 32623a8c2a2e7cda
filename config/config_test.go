package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("test", "testdata")
	require.NoError(t, err)

	assert.Equal(t, "ecofinds-test", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "shop", cfg.Store.Namespace)
	require.NotNil(t, cfg.QRCode)
	assert.Equal(t, 128, cfg.QRCode.Size)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithEnv[Config]("test", "testdata")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 7070, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("does-not-exist", "testdata")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	require.NotNil(t, cfg.Store.SQLite)
	assert.Equal(t, defaultSQLitePath, cfg.Store.SQLite.Path)
	require.NotNil(t, cfg.Images)
	assert.Equal(t, defaultImageBucketURL, cfg.Images.BucketURL)
	assert.Equal(t, "/images", cfg.Images.PublicBaseURL)
	assert.Equal(t, int64(defaultMaxUploadSize), cfg.Images.MaxUploadSize)
	require.NotNil(t, cfg.Worker)
	assert.Equal(t, defaultWorkerPort, cfg.Worker.Port)
}

func TestApplyDefaults_NormalizesDriver(t *testing.T) {
	cfg := &Config{}
	cfg.Store.Driver = "  Redis "
	applyDefaults(cfg)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Nil(t, cfg.Store.SQLite)
}
