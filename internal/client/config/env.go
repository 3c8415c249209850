package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// parseEnv overlays Config with the environment variables that are set.
// Unset or empty variables leave the field untouched.
func parseEnv(cfg *Config) {
	v := viper.New()
	for key, env := range map[string]string{
		"api_url":         "API_URL",
		"sensor_id":       "SENSOR_ID",
		"session_dsn":     "SESSION_DSN",
		"request_timeout": "REQUEST_TIMEOUT",
		"log_level":       "LOG_LEVEL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			panic(err)
		}
	}

	if v.IsSet("api_url") {
		cfg.APIURL = v.GetString("api_url")
	}
	if v.IsSet("sensor_id") {
		id, err := strconv.ParseInt(v.GetString("sensor_id"), 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.SensorID = id
	}
	if v.IsSet("session_dsn") {
		cfg.SessionDSN = v.GetString("session_dsn")
	}
	if v.IsSet("request_timeout") {
		d, err := time.ParseDuration(v.GetString("request_timeout"))
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
}
