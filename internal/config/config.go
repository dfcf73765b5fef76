// Package config assembles service settings from defaults, an optional YAML
// file and environment variables (after .env is loaded), in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

const (
	SourceMock   = "mock"
	SourceXLSX   = "xlsx"
	SourceRemote = "remote"
)

// Display carries the presentation settings the view-model assembler needs.
type Display struct {
	Currency string `yaml:"currency" json:"currency"`
	Locale   string `yaml:"locale" json:"locale"`
	Theme    string `yaml:"theme" json:"theme"`
}

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	DataSource    string        `yaml:"data_source"`
	DatasetPath   string        `yaml:"dataset_path"`
	RemoteBaseURL string        `yaml:"remote_base_url"`
	MockLatency   time.Duration `yaml:"mock_latency"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`

	RefreshInterval time.Duration `yaml:"refresh_interval"`
	TrendWindow     int           `yaml:"trend_window"`

	JWTSecret string `yaml:"jwt_secret"`

	Display Display `yaml:"display"`
}

func Default() Config {
	return Config{
		Port:            "8080",
		Environment:     "local",
		LogLevel:        "info",
		DataSource:      SourceMock,
		DatasetPath:     "hydromap.xlsx",
		MockLatency:     300 * time.Millisecond,
		FetchTimeout:    10 * time.Second,
		RefreshInterval: 5 * time.Second,
		TrendWindow:     10,
		JWTSecret:       "hydromap-demo-secret",
		Display: Display{
			Currency: "INR",
			Locale:   "en-IN",
			Theme:    "light",
		},
	}
}

// Load reads .env (if present), then the YAML file at path (skipped when
// empty), then environment overrides, and validates the result.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("HYDROMAP_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Environment, "ENVIRONMENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.DataSource, "DATA_SOURCE")
	setString(&c.DatasetPath, "DATASET_PATH")
	setString(&c.RemoteBaseURL, "REMOTE_BASE_URL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.Display.Currency, "CURRENCY")
	setString(&c.Display.Locale, "LOCALE")
	setString(&c.Display.Theme, "THEME")

	if v := os.Getenv("MOCK_LATENCY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: MOCK_LATENCY_MS=%q", ErrInvalid, v)
		}
		c.MockLatency = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: REFRESH_INTERVAL=%q", ErrInvalid, v)
		}
		c.RefreshInterval = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

var currencies = map[string]bool{"INR": true, "USD": true, "EUR": true, "GBP": true}

func (c Config) Validate() error {
	switch c.DataSource {
	case SourceMock, SourceXLSX:
	case SourceRemote:
		if c.RemoteBaseURL == "" {
			return fmt.Errorf("%w: remote data source needs remote_base_url", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown data source %q", ErrInvalid, c.DataSource)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", ErrInvalid)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive", ErrInvalid)
	}
	if c.TrendWindow <= 0 {
		return fmt.Errorf("%w: trend window must be positive", ErrInvalid)
	}
	if !currencies[strings.ToUpper(c.Display.Currency)] {
		return fmt.Errorf("%w: unsupported currency %q", ErrInvalid, c.Display.Currency)
	}
	return nil
}
