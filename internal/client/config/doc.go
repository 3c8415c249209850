// Package config loads runtime configuration for the SGR Sensor CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     API origin, e.g. http://127.0.0.1:5000/api
//	-s int        default sensor id
//	-d string     session database DSN
//	-t duration   request timeout, e.g. 5s
//	-l string     log level (debug, info, warn, error)
//
// Environment
//
//	API_URL, SENSOR_ID, SESSION_DSN, REQUEST_TIMEOUT, LOG_LEVEL
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either
// a string like "3s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://127.0.0.1:5000/api",
//	  "sensor_id": 1,
//	  "session_dsn": "file:session.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Malformed values in any source panic, as flag parsing does.
package config
