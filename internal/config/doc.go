// Package config loads runtime configuration for diarykeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-env-file, default ".env", silently skipped when the
//     default is absent) and DIARY_* environment variables. Real environment
//     variables win over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-driver string  database driver: sqlite or postgres
//	-d string       database DSN
//	-cost int       bcrypt cost
//	-x string       export directory
//	-n int          default number of recent entries
//	-l string       log level
//
// # JSON schema
//
// Durations use timex.Duration, so "5m" and integer nanoseconds both work:
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "file:diary.db?_pragma=foreign_keys(1)",
//	  "conn_max_idle_time": "5m",
//	  "log_backend": "logrus"
//	}
package config
