package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("API_URL", "http://env:5000/api")
	t.Setenv("SENSOR_ID", "12")
	t.Setenv("SESSION_DSN", "file:env.db")
	t.Setenv("REQUEST_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "error")

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, &Config{
		APIURL:         "http://env:5000/api",
		SensorID:       12,
		SessionDSN:     "file:env.db",
		RequestTimeout: 750 * time.Millisecond,
		LogLevel:       "error",
	}, cfg)
}

func TestParseEnv_UnsetKeepsValues(t *testing.T) {
	clearEnv(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	want := *cfg
	parseEnv(cfg)

	assert.Equal(t, want, *cfg)
}

func TestParseEnv_Malformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENSOR_ID", "one")
	require.Panics(t, func() { parseEnv(&Config{}) })

	t.Setenv("SENSOR_ID", "1")
	t.Setenv("REQUEST_TIMEOUT", "10")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
