package config

import (
	"time"

	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

// Config holds runtime settings for the client.
type Config struct {
	ServerBaseURL    string
	DatabasePath     string
	NotificationMode string
	RequestTimeout   time.Duration
	LogLevel         logging.Level
	LogBackend       string
}

// LoadDefaults populates c with sensible defaults. A zero RequestTimeout
// leaves the HTTP client without a deadline.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5050"
	c.DatabasePath = "travelrisk.db"
	c.NotificationMode = "remote"
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
}

// LoadConfig applies defaults, then the config file named in args (if
// any), then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
