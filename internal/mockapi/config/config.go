// Package config handles configuration for the backend stand-in,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings of the mock API.
//
// Fields:
//   - Addr: bind address of the HTTP server.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenTTL: access token lifetime.
//   - AdminEmail / AdminPassword: seeded administrator account.
//   - LogLevel: logrus level name.
type Config struct {
	Addr          string
	SecretKey     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	LogLevel      string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and meant for local use only.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:5000"
	c.SecretKey = "secretKey"
	c.TokenTTL = 2 * time.Hour
	c.AdminEmail = "admin@sgr.com"
	c.AdminPassword = "Admin123!"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, SGR_MOCKAPI_* environment variables and
// finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
