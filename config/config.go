package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Database  DatabaseConfig  `yaml:"database"`
	Retention RetentionConfig `yaml:"retention"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// ScraperConfig holds the upstream feed and scheduling configuration.
type ScraperConfig struct {
	Enabled            bool          `yaml:"enabled"`
	URL                string        `yaml:"url"`
	Command            string        `yaml:"command"`
	IntervalSeconds    int           `yaml:"interval_seconds"`
	Interval           time.Duration `yaml:"-"` // Ignored by YAML parser
	HandshakeDelayMS   int           `yaml:"handshake_delay_ms"`
	HandshakeDelay     time.Duration `yaml:"-"`
	ReadTimeoutSeconds int           `yaml:"read_timeout_seconds"`
	ReadTimeout        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "postgres" or "sqlite"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	EnableTimescale        bool   `yaml:"enable_timescale"`
}

// RetentionConfig controls the daily cleanup of old occupancy rows.
type RetentionConfig struct {
	Days          int `yaml:"days"`
	CleanupHour   int `yaml:"cleanup_hour"`
	WindowMinutes int `yaml:"window_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero or invalid values with the reference deployment's
// settings.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Scraper.URL == "" {
		cfg.Scraper.URL = "wss://badi-public.crowdmonitor.ch:9591/api"
	}
	if cfg.Scraper.Command == "" {
		cfg.Scraper.Command = "all"
	}
	if cfg.Scraper.IntervalSeconds <= 0 {
		cfg.Scraper.IntervalSeconds = 300
	}
	cfg.Scraper.Interval = time.Duration(cfg.Scraper.IntervalSeconds) * time.Second

	if cfg.Scraper.HandshakeDelayMS <= 0 {
		cfg.Scraper.HandshakeDelayMS = 500
	}
	cfg.Scraper.HandshakeDelay = time.Duration(cfg.Scraper.HandshakeDelayMS) * time.Millisecond

	if cfg.Scraper.ReadTimeoutSeconds <= 0 {
		cfg.Scraper.ReadTimeoutSeconds = 10
	}
	cfg.Scraper.ReadTimeout = time.Duration(cfg.Scraper.ReadTimeoutSeconds) * time.Second

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "./pool-occupancy.db"
	}

	if cfg.Retention.Days <= 0 {
		cfg.Retention.Days = 90
	}
	if cfg.Retention.CleanupHour <= 0 || cfg.Retention.CleanupHour > 23 {
		cfg.Retention.CleanupHour = 3
	}
	if cfg.Retention.WindowMinutes <= 0 {
		cfg.Retention.WindowMinutes = 5
	}
}
