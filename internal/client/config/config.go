package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings for the console.
type Config struct {
	// APIBaseURL selects the backend host every fetch is issued against.
	APIBaseURL string `env:"STOREPULSE_API_BASE_URL"`
	// SessionDB is the sqlite file backing the local key/value store.
	SessionDB string `env:"STOREPULSE_SESSION_DB"`
	LogLevel  string `env:"STOREPULSE_LOG_LEVEL"`
	// TopCustomersLimit is passed as ?limit= to the top-customers endpoint.
	TopCustomersLimit int `env:"STOREPULSE_TOP_CUSTOMERS_LIMIT"`
	// DashboardWindow is the default span of the tenant dashboard date filter.
	DashboardWindow time.Duration `env:"STOREPULSE_DASHBOARD_WINDOW"`
}

// Overrides carries values given on the command line. Empty fields are
// ignored.
type Overrides struct {
	ConfigFile string
	APIBaseURL string
	SessionDB  string
	LogLevel   string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.SessionDB = "storepulse.db"
	c.LogLevel = "info"
	c.TopCustomersLimit = 5
	c.DashboardWindow = 30 * 24 * time.Hour
}

// Load builds a Config by applying defaults, then the optional file, then
// the environment, then command-line overrides. Later sources take
// precedence over earlier ones.
func Load(o Overrides) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if o.ConfigFile != "" {
		if err := parseFile(cfg, o.ConfigFile); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	applyOverrides(cfg, o)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.APIBaseURL != "" {
		cfg.APIBaseURL = o.APIBaseURL
	}
	if o.SessionDB != "" {
		cfg.SessionDB = o.SessionDB
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}

func (c *Config) validate() error {
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: api base url is empty")
	}
	if c.TopCustomersLimit <= 0 {
		return fmt.Errorf("config: top customers limit must be positive, got %d", c.TopCustomersLimit)
	}
	if c.DashboardWindow <= 0 {
		return fmt.Errorf("config: dashboard window must be positive, got %s", c.DashboardWindow)
	}
	return nil
}
