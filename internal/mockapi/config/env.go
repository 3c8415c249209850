package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables, e.g. SGR_MOCKAPI_ADDR.
const EnvPrefix = "SGR_MOCKAPI"

// parseEnv overlays Config with the SGR_MOCKAPI_* variables that are set.
// SGR_MOCKAPI_TOKEN_TTL takes a duration such as "2h".
func parseEnv(config *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", config.Addr)
	v.SetDefault("secret_key", config.SecretKey)
	v.SetDefault("token_ttl", config.TokenTTL)
	v.SetDefault("admin_email", config.AdminEmail)
	v.SetDefault("admin_password", config.AdminPassword)
	v.SetDefault("log_level", config.LogLevel)

	config.Addr = v.GetString("addr")
	config.SecretKey = v.GetString("secret_key")
	config.TokenTTL = v.GetDuration("token_ttl")
	config.AdminEmail = v.GetString("admin_email")
	config.AdminPassword = v.GetString("admin_password")
	config.LogLevel = v.GetString("log_level")
}
