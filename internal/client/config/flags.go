package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/sgrsensor/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     API origin (default from Config)
//	-s int        default sensor id
//	-d string     session database DSN
//	-t duration   request timeout
//	-l string     log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "API origin, e.g. http://127.0.0.1:5000/api")
	fs.Int64Var(&cfg.SensorID, "s", cfg.SensorID, "default sensor id")
	fs.StringVar(&cfg.SessionDSN, "d", cfg.SessionDSN, "session database DSN")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
