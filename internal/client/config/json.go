package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/flagx"
	"github.com/dmitrijs2005/sgrsensor/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// members leave the corresponding Config field untouched.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	SensorID       *int64          `json:"sensor_id"`
	SessionDSN     *string         `json:"session_dsn"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.SensorID != nil {
		cfg.SensorID = *jc.SensorID
	}
	if jc.SessionDSN != nil {
		cfg.SessionDSN = *jc.SessionDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
