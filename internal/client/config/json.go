package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pasteflow/pasteflow/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are JSON strings like "30s" and are parsed into the runtime Config.
type JsonConfig struct {
	APIBaseURL     string `json:"api_url"`
	AuthBaseURL    string `json:"auth_url"`
	SecretsDBPath  string `json:"secrets_db"`
	LogFormat      string `json:"log_format"`
	LogLevel       string `json:"log_level"`
	RequestTimeout string `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected by
// the -c or -config flags. When no file is given the function returns
// without touching cfg. Read and parse errors panic; the caller owns the
// policy for that.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AuthBaseURL != "" {
		cfg.AuthBaseURL = jc.AuthBaseURL
	}
	if jc.SecretsDBPath != "" {
		cfg.SecretsDBPath = jc.SecretsDBPath
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
