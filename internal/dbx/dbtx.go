// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a Source that hands out a usable handle per operation, a helper to run
// functions inside a transaction, and driver error classification.
package dbx

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Source hands out a usable DBTX for a single repository operation.
// The storage gateway implements it; Static adapts a fixed handle.
type Source interface {
	Conn(ctx context.Context) (DBTX, error)
}

// Beginner starts transactions. *sql.DB and the storage gateway satisfy it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// TxSource is a Source that can also start transactions.
type TxSource interface {
	Source
	Beginner
}

type staticSource struct {
	db DBTX
}

// Static returns a Source that always yields db. Use it to bind repositories
// to a *sql.Tx inside WithTx, or to a plain *sql.DB in tests.
func Static(db DBTX) Source {
	return staticSource{db: db}
}

func (s staticSource) Conn(context.Context) (DBTX, error) {
	return s.db, nil
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, gw, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := users.NewSQLiteRepository(dbx.Static(tx))
//	    _, err := repo.Save(ctx, u)
//	    return err
//	})
func WithTx(ctx context.Context, db Beginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// RowScanner is implemented by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Timestamp normalises t to the precision and zone every supported engine
// stores losslessly: UTC, whole microseconds.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
