package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with PASTEFLOW_* environment variables. A .env
// file in the working directory is loaded first when present; a missing
// file is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PASTEFLOW_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("PASTEFLOW_AUTH_URL"); v != "" {
		cfg.AuthBaseURL = v
	}
	if v := os.Getenv("PASTEFLOW_SECRETS_DB"); v != "" {
		cfg.SecretsDBPath = v
	}
	if v := os.Getenv("PASTEFLOW_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("PASTEFLOW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PASTEFLOW_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
