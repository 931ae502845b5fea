package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type envSource map[string]string

// get prefers the process environment over values read from the dotenv file.
func (e envSource) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e[key]
}

func (e envSource) str(key string, dst *string) {
	if v := e.get(key); v != "" {
		*dst = v
	}
}

func (e envSource) int(key string, dst *int) error {
	v := e.get(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid int for %s: %w", key, err)
	}
	*dst = i
	return nil
}

func (e envSource) dur(key string, dst *time.Duration) error {
	v := e.get(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	*dst = d
	return nil
}

// parseEnv overlays cfg with DIARY_* variables, reading the dotenv file named
// by -env-file first. An explicitly named file must exist.
func parseEnv(cfg *Config, args []string) error {
	file := flagx.EnvFile(args)
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	src, err := godotenv.Read(file)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", file, err)
		}
		src = map[string]string{}
	}
	e := envSource(src)

	e.str("DIARY_DB_DRIVER", &cfg.DatabaseDriver)
	e.str("DIARY_DB_DSN", &cfg.DatabaseDSN)
	e.str("DIARY_EXPORT_DIR", &cfg.ExportDir)
	e.str("DIARY_LOG_BACKEND", &cfg.LogBackend)
	e.str("DIARY_LOG_FORMAT", &cfg.LogFormat)
	e.str("DIARY_LOG_LEVEL", &cfg.LogLevel)

	return errors.Join(
		e.int("DIARY_DB_MAX_OPEN_CONNS", &cfg.MaxOpenConns),
		e.dur("DIARY_DB_CONN_MAX_IDLE", &cfg.ConnMaxIdleTime),
		e.int("DIARY_BCRYPT_COST", &cfg.BcryptCost),
		e.int("DIARY_RECENT_LIMIT", &cfg.RecentLimit),
	)
}
