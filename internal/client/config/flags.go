package config

import (
	"flag"
	"os"
	"time"

	"github.com/pasteflow/pasteflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the paste service API
//	-u string   base URL of the identity provider
//	-d string   path to the local secrets database
//	-f string   log format (console|json)
//	-l string   log level (debug|info|warn|error)
//	-t int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-d", "-f", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the paste service API")
	fs.StringVar(&cfg.AuthBaseURL, "u", cfg.AuthBaseURL, "base URL of the identity provider")
	fs.StringVar(&cfg.SecretsDBPath, "d", cfg.SecretsDBPath, "path to the local secrets database")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (console|json)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
