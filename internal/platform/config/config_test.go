package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("EYECANDY_CONFIG_FILE", "")
	t.Setenv("EYECANDY_ENV", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, DefaultJWTAudience, cfg.JWTAudience)
	assert.Equal(t, DefaultGeoTimeout, cfg.Geolocation.Timeout)
	assert.Equal(t, DefaultTeaserRetain, cfg.Teaser.Retention)
	assert.Empty(t, cfg.Database.URL)
	assert.True(t, cfg.IsDevelopment())
}

func TestFromEnv_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  trusted_proxies: ["10.0.0.0/8", "192.168.0.1"]
geolocation:
  timeout: 750ms
kafka:
  brokers: "file-broker:9092"
`), 0o600))

	t.Setenv("EYECANDY_CONFIG_FILE", path)
	t.Setenv("KAFKA_BROKERS", "env-broker:9092")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 750*time.Millisecond, cfg.Geolocation.Timeout)
	assert.Equal(t, "env-broker:9092", cfg.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.1"}, cfg.TrustedProxies)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("EYECANDY_CONFIG_FILE", "")
	t.Setenv("GEO_TIMEOUT", "soon")
	t.Setenv("REDIS_POOL_SIZE", "many")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEO_TIMEOUT must be a duration")
	assert.Contains(t, err.Error(), "REDIS_POOL_SIZE must be an integer")
}

func TestFromEnv_MissingConfigFile(t *testing.T) {
	t.Setenv("EYECANDY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_ProductionRequiresSigningKey(t *testing.T) {
	t.Setenv("EYECANDY_CONFIG_FILE", "")
	t.Setenv("EYECANDY_ENV", "production")
	t.Setenv("JWT_SIGNING_KEY", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrInsecureSigningKey)

	t.Setenv("JWT_SIGNING_KEY", "a-real-key")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
}

func TestTrustedProxiesFromEnv(t *testing.T) {
	t.Setenv("EYECANDY_CONFIG_FILE", "")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8 , ,172.16.0.0/12")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, cfg.TrustedProxies)
}

func TestFromEnv_Tracing(t *testing.T) {
	t.Setenv("EYECANDY_CONFIG_FILE", "")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLING_RATE", "0.5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Tracing.Enabled)
	assert.InDelta(t, 0.5, cfg.Tracing.SamplingRate, 0.0001)

	t.Setenv("OTEL_SAMPLING_RATE", "2")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLING_RATE must be between 0 and 1")
}
