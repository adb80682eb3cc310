package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: beacon
  log:
    pretty: true
    level: debug

http:
  port: 8080
  timeouts:
    readTimeout: 5s
    writeTimeout: 10s

location:
  provider: static
  oneShotTimeout: 10s
  cacheMaxAge: 60s
  trackingTimeout: 30s
  trackingMaxAge: 10s
  static:
    latitude: 25.0330
    longitude: 121.5654
    accuracyMeters: 15
    interval: 5s

sos:
  countdown: 5s

qrcode:
  size: 256
  errorCorrectionLevel: M
`

func writeTestConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv(t *testing.T) {
	writeTestConfig(t)

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "beacon", cfg.Env.ServiceName)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeouts.ReadTimeout)

	require.NotNil(t, cfg.Location)
	assert.Equal(t, "static", cfg.Location.Provider)
	assert.Equal(t, 10*time.Second, cfg.Location.OneShotTimeout)
	assert.Equal(t, 60*time.Second, cfg.Location.CacheMaxAge)
	require.NotNil(t, cfg.Location.Static)
	assert.Equal(t, 25.0330, cfg.Location.Static.Latitude)
	assert.Equal(t, 5*time.Second, cfg.Location.Static.Interval)

	require.NotNil(t, cfg.SOS)
	assert.Equal(t, 5*time.Second, cfg.SOS.Countdown)

	require.NotNil(t, cfg.QRCode)
	assert.Equal(t, 256, cfg.QRCode.Size)

	// Postgres is optional and absent here.
	assert.Nil(t, cfg.Postgres)
}

func TestLoadWithEnv_EnvOverride(t *testing.T) {
	writeTestConfig(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOCATION_PROVIDER", "remote")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "remote", cfg.Location.Provider)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv[Config]("nonexistent")
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "not found")
}
