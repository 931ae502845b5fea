package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/diarykeeper/internal/flagx"
)

// parseFlags overlays cfg with the short command-line flags. Other flags in
// args are filtered out first so REPL or bootstrap flags do not collide.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-driver", "-d", "-cost", "-x", "-n", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.IntVar(&cfg.BcryptCost, "cost", cfg.BcryptCost, "bcrypt cost")
	fs.StringVar(&cfg.ExportDir, "x", cfg.ExportDir, "export directory")
	fs.IntVar(&cfg.RecentLimit, "n", cfg.RecentLimit, "number of recent entries")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
