package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/diarykeeper/internal/flagx"
	"github.com/dmitrijs2005/diarykeeper/internal/timex"
)

// JsonConfig is the on-disk shape of a config file. Keys missing from the
// file keep the value accumulated from earlier sources.
type JsonConfig struct {
	DatabaseDriver  string         `json:"database_driver"`
	DatabaseDSN     string         `json:"database_dsn"`
	MaxOpenConns    int            `json:"max_open_conns"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time"`
	BcryptCost      int            `json:"bcrypt_cost"`
	ExportDir       string         `json:"export_dir"`
	RecentLimit     int            `json:"recent_limit"`
	LogBackend      string         `json:"log_backend"`
	LogFormat       string         `json:"log_format"`
	LogLevel        string         `json:"log_level"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	jc := JsonConfig{
		DatabaseDriver:  cfg.DatabaseDriver,
		DatabaseDSN:     cfg.DatabaseDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxIdleTime: timex.Duration{Duration: cfg.ConnMaxIdleTime},
		BcryptCost:      cfg.BcryptCost,
		ExportDir:       cfg.ExportDir,
		RecentLimit:     cfg.RecentLimit,
		LogBackend:      cfg.LogBackend,
		LogFormat:       cfg.LogFormat,
		LogLevel:        cfg.LogLevel,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.DatabaseDriver = jc.DatabaseDriver
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.MaxOpenConns = jc.MaxOpenConns
	cfg.ConnMaxIdleTime = jc.ConnMaxIdleTime.Duration
	cfg.BcryptCost = jc.BcryptCost
	cfg.ExportDir = jc.ExportDir
	cfg.RecentLimit = jc.RecentLimit
	cfg.LogBackend = jc.LogBackend
	cfg.LogFormat = jc.LogFormat
	cfg.LogLevel = jc.LogLevel
	return nil
}
