package config

import (
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/session"
	"github.com/dmitrijs2005/sgrsensor/internal/common"
)

// Config holds runtime settings for the SGR Sensor CLI.
//
// Fields:
//   - APIURL: origin of the backend REST API, including the /api prefix.
//   - SensorID: sensor the dashboard commands act on by default.
//   - SessionDSN: SQLite DSN of the session store.
//   - RequestTimeout: per-request limit; zero disables it.
//   - LogLevel: logrus level name.
type Config struct {
	APIURL         string
	SensorID       int64
	SessionDSN     string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = common.DefaultAPIURL
	c.SensorID = common.DefaultSensorID
	c.SessionDSN = session.MemoryDSN
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
