package dbx

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Classifier maps a raw driver error onto one of the common error kinds.
type Classifier func(err error) error

func wrap(kind error, err error) error {
	return fmt.Errorf("db error: %w: %w", kind, err)
}

func classifyConn(err error) (error, bool) {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return wrap(common.ErrorStorageUnavailable, err), true
	}
	return nil, false
}

// ClassifySQLite classifies errors returned by modernc.org/sqlite.
// Unique violations become common.ErrorConflict, foreign key violations
// common.ErrorValidation, lost connections common.ErrorStorageUnavailable,
// everything else common.ErrorStorage. A nil error stays nil.
func ClassifySQLite(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := classifyConn(err); ok {
		return e
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return wrap(common.ErrorConflict, err)
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return wrap(common.ErrorValidation, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"):
			// primary result code only (extended codes disabled)
			return wrap(common.ErrorConflict, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "FOREIGN KEY"):
			return wrap(common.ErrorValidation, err)
		}
	}
	return wrap(common.ErrorStorage, err)
}

// ClassifyPostgres classifies errors returned by pgx.
func ClassifyPostgres(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := classifyConn(err); ok {
		return e
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return wrap(common.ErrorConflict, err)
		case pgForeignKeyViolation:
			return wrap(common.ErrorValidation, err)
		}
	}
	return wrap(common.ErrorStorage, err)
}
