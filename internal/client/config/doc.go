// Package config loads runtime configuration for the PasteFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), with .env file support.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the paste service API
//	-u string   base URL of the identity provider (empty disables auth)
//	-d string   path to the local secrets database
//	-f string   log format: console or json
//	-l string   log level: debug, info, warn, error
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "api_url": "https://pastebin-api-bx76.onrender.com",
//	  "auth_url": "https://auth.example.com",
//	  "secrets_db": "pasteflow.db",
//	  "log_format": "console",
//	  "log_level": "info",
//	  "request_timeout": "30s"
//	}
//
// Environment variables use the PASTEFLOW_ prefix: PASTEFLOW_API_URL,
// PASTEFLOW_AUTH_URL, PASTEFLOW_SECRETS_DB, PASTEFLOW_LOG_FORMAT,
// PASTEFLOW_LOG_LEVEL, PASTEFLOW_REQUEST_TIMEOUT.
package config
