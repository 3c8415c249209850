package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/sgrsensor/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     bind address (e.g., "127.0.0.1:5000")
//	-s string     JWT HMAC secret key
//	-t duration   access token lifetime (e.g., "2h")
//	-u string     seeded admin e-mail
//	-p string     seeded admin password
//	-l string     log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-u", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "access token validity")
	fs.StringVar(&config.AdminEmail, "u", config.AdminEmail, "admin e-mail")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "admin password")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
