package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/flagx"
	"github.com/dmitrijs2005/sgrsensor/internal/timex"
)

// JsonConfig is the JSON form of Config. Empty members are ignored.
type JsonConfig struct {
	Addr          string         `json:"addr"`
	SecretKey     string         `json:"secret_key"`
	TokenTTL      timex.Duration `json:"token_ttl"`
	AdminEmail    string         `json:"admin_email"`
	AdminPassword string         `json:"admin_password"`
	LogLevel      string         `json:"log_level"`
}

// parseJson overlays Config with the file named by -c or -config.
// Panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.Addr, c.Addr)
	set(&config.SecretKey, c.SecretKey)
	set(&config.AdminEmail, c.AdminEmail)
	set(&config.AdminPassword, c.AdminPassword)
	set(&config.LogLevel, c.LogLevel)
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = time.Duration(c.TokenTTL.Duration)
	}
}
