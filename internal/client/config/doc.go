// Package config loads runtime configuration for the travelrisk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend, e.g. http://localhost:5050
//	-d string   path of the local SQLite database
//	-m string   notification mode: remote or local
//	-t int      request timeout in seconds, 0 for none
//	-l string   log level: debug, info, warn or error
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "5s"
// or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:5050",
//	  "database_path": "travelrisk.db",
//	  "notification_mode": "remote",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
//
// Only keys present in the file override the defaults.
package config
