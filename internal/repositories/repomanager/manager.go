// Package repomanager vends dialect-specific repositories bound to a
// dbx.Source, so services can rebind them to a transaction.
package repomanager

import (
	"fmt"

	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/entries"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/users"
	"github.com/dmitrijs2005/diarykeeper/internal/storage"
)

type RepositoryManager interface {
	Users(src dbx.Source) users.Repository
	Entries(src dbx.Source) entries.Repository
}

// New returns the manager for d.
func New(d storage.Dialect) (RepositoryManager, error) {
	switch d {
	case storage.DialectSQLite:
		return &SQLiteRepositoryManager{}, nil
	case storage.DialectPostgres:
		return &PostgresRepositoryManager{}, nil
	}
	return nil, fmt.Errorf("no repositories for dialect %q", d)
}

type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(src dbx.Source) users.Repository {
	return users.NewSQLiteRepository(src)
}

func (m *SQLiteRepositoryManager) Entries(src dbx.Source) entries.Repository {
	return entries.NewSQLiteRepository(src)
}

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(src dbx.Source) users.Repository {
	return users.NewPostgresRepository(src)
}

func (m *PostgresRepositoryManager) Entries(src dbx.Source) entries.Repository {
	return entries.NewPostgresRepository(src)
}
