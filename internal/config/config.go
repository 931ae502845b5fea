package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the diary application.
type Config struct {
	DatabaseDriver  string
	DatabaseDSN     string
	MaxOpenConns    int
	ConnMaxIdleTime time.Duration
	BcryptCost      int
	ExportDir       string
	RecentLimit     int
	LogBackend      string
	LogFormat       string
	LogLevel        string
}

// LoadDefaults populates c with defaults suitable for a local desktop install.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:diary.db?_pragma=foreign_keys(1)"
	c.MaxOpenConns = 1
	c.ConnMaxIdleTime = 5 * time.Minute
	c.BcryptCost = 12
	c.ExportDir = "memories"
	c.RecentLimit = 5
	c.LogBackend = "slog"
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then env, JSON and flags taken from args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
