package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/travelrisk/internal/flagx"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
	"github.com/dmitrijs2005/travelrisk/internal/timex"
)

// FileConfig is the DTO decoded from a config file. Pointer fields tell
// absent keys apart from zero values.
type FileConfig struct {
	ServerBaseURL    *string         `json:"server_base_url" yaml:"server_base_url"`
	DatabasePath     *string         `json:"database_path" yaml:"database_path"`
	NotificationMode *string         `json:"notification_mode" yaml:"notification_mode"`
	RequestTimeout   *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
	LogBackend       *string         `json:"log_backend" yaml:"log_backend"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *fc.ServerBaseURL
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.NotificationMode != nil {
		cfg.NotificationMode = *fc.NotificationMode
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = logging.Level(*fc.LogLevel)
	}
	if fc.LogBackend != nil {
		cfg.LogBackend = *fc.LogBackend
	}
}
