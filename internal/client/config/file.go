package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/storepulse/internal/timex"
)

// fileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so files can specify the window either as "720h" or as
// integer nanoseconds. Only keys present in the file are copied over.
type fileConfig struct {
	APIBaseURL        string         `json:"api_base_url" yaml:"api_base_url"`
	SessionDB         string         `json:"session_db" yaml:"session_db"`
	LogLevel          string         `json:"log_level" yaml:"log_level"`
	TopCustomersLimit int            `json:"top_customers_limit" yaml:"top_customers_limit"`
	DashboardWindow   timex.Duration `json:"dashboard_window" yaml:"dashboard_window"`
}

// parseFile overlays cfg with values read from path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.SessionDB != "" {
		cfg.SessionDB = fc.SessionDB
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.TopCustomersLimit != 0 {
		cfg.TopCustomersLimit = fc.TopCustomersLimit
	}
	if fc.DashboardWindow.Duration != 0 {
		cfg.DashboardWindow = fc.DashboardWindow.Duration
	}
	return nil
}
