package config

import "time"

// Config holds runtime settings for the PasteFlow CLI.
//
// Fields:
//   - APIBaseURL: base URL of the paste service.
//   - AuthBaseURL: base URL of the identity provider; empty means no
//     provider is configured and the client runs anonymous-only.
//   - SecretsDBPath: path to the local SQLite database holding edit secrets.
//   - LogFormat: "console" (human-readable) or "json".
//   - LogLevel: debug, info, warn, or error.
//   - RequestTimeout: per-request timeout for paste service and identity
//     provider calls.
type Config struct {
	APIBaseURL     string
	AuthBaseURL    string
	SecretsDBPath  string
	LogFormat      string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://pastebin-api-bx76.onrender.com"
	c.AuthBaseURL = ""
	c.SecretsDBPath = "pasteflow.db"
	c.LogFormat = "console"
	c.LogLevel = "info"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
