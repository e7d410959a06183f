// Package config holds the scanner configuration: defaults, an
// optional YAML or JSON file, then environment overrides, in that
// order. A .env file in the working directory is honored.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eNirmalraj/insight-trading-dashboard/market"
	"github.com/eNirmalraj/insight-trading-dashboard/strategy"
)

// Scan defaults, applied when the file and environment leave a knob
// unset.
const (
	DefaultBufferSize      = 200
	DefaultSymbolLimit     = 50
	DefaultInterval        = "5m"
	DefaultSymbolDelay     = "100ms"
	DefaultDuplicateWindow = "60m"
)

// Config is the complete scanner configuration.
type Config struct {
	MT5      MT5Config      `json:"mt5" yaml:"mt5"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Scan     ScanConfig     `json:"scan" yaml:"scan"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// MT5Config locates the terminal bridge. Account, Password and Server
// are optional; when absent the bridge reuses the terminal's existing
// session.
type MT5Config struct {
	BridgeURL string `json:"bridge_url" yaml:"bridge_url"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"`
	Account   int64  `json:"account,omitempty" yaml:"account,omitempty"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	Server    string `json:"server,omitempty" yaml:"server,omitempty"`
}

// HasLogin reports whether explicit terminal credentials were given.
func (m MT5Config) HasLogin() bool {
	return m.Account != 0 || m.Password != "" || m.Server != ""
}

// DatabaseConfig selects the journal backend.
type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"` // "sqlite" or "postgres"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// SourceDSN returns the data source string for the configured driver.
func (d DatabaseConfig) SourceDSN() string {
	if d.Driver == "postgres" || d.Driver == "postgresql" {
		return d.DSN
	}
	return d.Path
}

// ScanConfig contains the scan loop parameters. Durations are strings
// like "5m" or "100ms".
type ScanConfig struct {
	Timeframes      []string `json:"timeframes" yaml:"timeframes"`
	BufferSize      int      `json:"buffer_size" yaml:"buffer_size"`
	Interval        string   `json:"interval" yaml:"interval"`
	SymbolLimit     int      `json:"symbol_limit" yaml:"symbol_limit"`
	SymbolDelay     string   `json:"symbol_delay" yaml:"symbol_delay"`
	DuplicateWindow string   `json:"duplicate_window" yaml:"duplicate_window"`

	// Symbols, when set, bypasses terminal discovery.
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// ParseTimeframes converts the configured timeframe names.
func (s ScanConfig) ParseTimeframes() ([]market.Timeframe, error) {
	out := make([]market.Timeframe, 0, len(s.Timeframes))
	for _, raw := range s.Timeframes {
		tf, err := market.ParseTimeframe(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, tf)
	}
	return out, nil
}

// ParseInterval converts the cycle interval string.
func (s ScanConfig) ParseInterval() (time.Duration, error) {
	return parseDuration("scan.interval", s.Interval, DefaultInterval)
}

// ParseSymbolDelay converts the inter-symbol delay string.
func (s ScanConfig) ParseSymbolDelay() (time.Duration, error) {
	return parseDuration("scan.symbol_delay", s.SymbolDelay, DefaultSymbolDelay)
}

// ParseDuplicateWindow converts the dedup window string.
func (s ScanConfig) ParseDuplicateWindow() (time.Duration, error) {
	return parseDuration("scan.duplicate_window", s.DuplicateWindow, DefaultDuplicateWindow)
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Load builds the effective configuration. Path may be empty to run on
// defaults and environment alone.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// Try YAML first, fall back to JSON
		if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", yamlErr)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration to a file, JSON or YAML based on
// extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MT5.BridgeURL == "" {
		return fmt.Errorf("mt5.bridge_url is required")
	}
	if c.MT5.HasLogin() && (c.MT5.Account == 0 || c.MT5.Password == "" || c.MT5.Server == "") {
		return fmt.Errorf("mt5 login requires account, password and server together")
	}

	switch c.Database.Driver {
	case "sqlite", "sqlite3":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path required for sqlite driver")
		}
	case "postgres", "postgresql":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn required for postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be 'sqlite' or 'postgres'")
	}

	if len(c.Scan.Timeframes) == 0 {
		return fmt.Errorf("scan.timeframes must not be empty")
	}
	if _, err := c.Scan.ParseTimeframes(); err != nil {
		return fmt.Errorf("scan.timeframes: %w", err)
	}
	if c.Scan.BufferSize < strategy.MinHistory {
		return fmt.Errorf("scan.buffer_size must be at least %d", strategy.MinHistory)
	}
	if c.Scan.SymbolLimit <= 0 {
		return fmt.Errorf("scan.symbol_limit must be positive")
	}

	interval, err := c.Scan.ParseInterval()
	if err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("scan.interval must be positive")
	}
	if delay, err := c.Scan.ParseSymbolDelay(); err != nil {
		return err
	} else if delay < 0 {
		return fmt.Errorf("scan.symbol_delay must not be negative")
	}
	if _, err := c.Scan.ParseDuplicateWindow(); err != nil {
		return err
	}

	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		MT5: MT5Config{
			BridgeURL: "http://localhost:8000",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "./signals.db",
		},
		Scan: ScanConfig{
			Timeframes:      []string{"H1", "H4"},
			BufferSize:      DefaultBufferSize,
			Interval:        DefaultInterval,
			SymbolLimit:     DefaultSymbolLimit,
			SymbolDelay:     DefaultSymbolDelay,
			DuplicateWindow: DefaultDuplicateWindow,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) applyEnv() {
	c.MT5.BridgeURL = getenvDefault("MT5_BRIDGE_URL", c.MT5.BridgeURL)
	c.MT5.Token = getenvDefault("MT5_TOKEN", c.MT5.Token)
	c.MT5.Account = int64FromEnv("MT5_ACCOUNT", c.MT5.Account)
	c.MT5.Password = getenvDefault("MT5_PASSWORD", c.MT5.Password)
	c.MT5.Server = getenvDefault("MT5_SERVER", c.MT5.Server)

	c.Database.Driver = getenvDefault("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getenvDefault("DB_PATH", c.Database.Path)
	c.Database.DSN = getenvDefault("DATABASE_URL", c.Database.DSN)

	c.Scan.BufferSize = intFromEnv("SCAN_BUFFER_SIZE", c.Scan.BufferSize)
	c.Scan.Interval = getenvDefault("SCAN_INTERVAL", c.Scan.Interval)
	c.Scan.SymbolLimit = intFromEnv("SCAN_SYMBOL_LIMIT", c.Scan.SymbolLimit)
	c.Scan.SymbolDelay = getenvDefault("SCAN_SYMBOL_DELAY", c.Scan.SymbolDelay)
	c.Scan.DuplicateWindow = getenvDefault("SCAN_DUPLICATE_WINDOW", c.Scan.DuplicateWindow)
	if v := os.Getenv("SCAN_TIMEFRAMES"); v != "" {
		c.Scan.Timeframes = splitList(v)
	}
	if v := os.Getenv("SCAN_SYMBOLS"); v != "" {
		c.Scan.Symbols = splitList(v)
	}

	c.Metrics.Addr = getenvDefault("METRICS_ADDR", c.Metrics.Addr)
	c.Log.Level = getenvDefault("LOG_LEVEL", c.Log.Level)
}

func parseDuration(field, value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
