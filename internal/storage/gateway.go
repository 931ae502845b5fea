// Package storage owns the database handle: it opens the pool, bootstraps the
// schema with goose, health-checks the handle before use and reopens it once
// when it was closed or broke.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Options configures a Gateway.
type Options struct {
	Dialect         Dialect
	DSN             string
	MaxOpenConns    int
	ConnMaxIdleTime time.Duration
}

// Seams for tests.
var (
	sqlOpen = sql.Open

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Gateway implements dbx.TxSource over a single lazily (re)opened *sql.DB.
type Gateway struct {
	mu   sync.Mutex
	db   *sql.DB
	opts Options
	log  logging.Logger
}

var _ dbx.TxSource = (*Gateway)(nil)

// Open connects and bootstraps the schema. Failures wrap
// common.ErrorStorageUnavailable.
func Open(ctx context.Context, opts Options, log logging.Logger) (*Gateway, error) {
	if opts.Dialect == "" {
		opts.Dialect = DialectSQLite
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 1
	}
	if log == nil {
		log = logging.Nop()
	}

	g := &Gateway{opts: opts, log: log.With("dialect", string(opts.Dialect))}
	db, err := g.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}
	g.db = db
	return g, nil
}

// Dialect returns the engine this gateway talks to.
func (g *Gateway) Dialect() Dialect {
	return g.opts.Dialect
}

func (g *Gateway) connect(ctx context.Context) (*sql.DB, error) {
	db, err := sqlOpen(g.opts.Dialect.DriverName(), g.opts.Dialect.NormalizeDSN(g.opts.DSN))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(g.opts.MaxOpenConns)
	db.SetMaxIdleConns(g.opts.MaxOpenConns)
	if g.opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(g.opts.ConnMaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := g.runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	g.log.Debug(ctx, "database ready")
	return db, nil
}

func (g *Gateway) runMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(g.opts.Dialect.gooseDialect()); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, g.opts.Dialect.migrationsDir())
}

func (g *Gateway) handle(ctx context.Context) (*sql.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		err := g.db.PingContext(ctx)
		if err == nil {
			return g.db, nil
		}
		g.log.Warn(ctx, "database handle unhealthy, reopening", "error", err)
		_ = g.db.Close()
		g.db = nil
	}

	db, err := g.connect(ctx)
	if err != nil {
		g.log.Error(ctx, "database reopen failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}
	g.db = db
	return db, nil
}

// Conn returns a healthy handle, reopening and re-bootstrapping at most once
// if the previous one was closed or fails its ping.
func (g *Gateway) Conn(ctx context.Context) (dbx.DBTX, error) {
	return g.handle(ctx)
}

// DB is Conn for callers that need the concrete *sql.DB.
func (g *Gateway) DB(ctx context.Context) (*sql.DB, error) {
	return g.handle(ctx)
}

func (g *Gateway) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	db, err := g.handle(ctx)
	if err != nil {
		return nil, err
	}
	return db.BeginTx(ctx, opts)
}

// Close releases the handle. A later Conn reopens it.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}
