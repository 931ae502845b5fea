package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
)

// now is a seam for tests.
var now = time.Now

type SQLRepository struct {
	src      dbx.Source
	q        queries
	classify dbx.Classifier
}

func NewSQLiteRepository(src dbx.Source) *SQLRepository {
	return &SQLRepository{src: src, q: sqliteQueries, classify: dbx.ClassifySQLite}
}

func NewPostgresRepository(src dbx.Source) *SQLRepository {
	return &SQLRepository{src: src, q: postgresQueries, classify: dbx.ClassifyPostgres}
}

func scanEntry(row dbx.RowScanner) (*models.DiaryEntry, error) {
	var (
		e    models.DiaryEntry
		mood string
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Content, &e.UserID, &mood, &e.IsEncrypted, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := models.ParseMood(mood)
	if err != nil {
		return nil, fmt.Errorf("decode entry %d: %w", e.ID, err)
	}
	e.Mood = m
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

// likeEscaper makes %, _ and the escape character itself literal in a LIKE
// pattern that declares ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Save inserts entry and sets its generated ID. Zero timestamps are filled
// with the current time.
func (r *SQLRepository) Save(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return nil, err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now()
	}
	entry.CreatedAt = dbx.Timestamp(entry.CreatedAt)
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}
	entry.UpdatedAt = dbx.Timestamp(entry.UpdatedAt)

	err = db.QueryRowContext(ctx, r.q.insert,
		entry.Title, entry.Content, entry.UserID, string(entry.Mood), entry.IsEncrypted,
		entry.CreatedAt, entry.UpdatedAt).Scan(&entry.ID)
	if err != nil {
		return nil, r.classify(err)
	}

	return entry, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (common.Optional[*models.DiaryEntry], error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return common.None[*models.DiaryEntry](), err
	}

	e, err := scanEntry(db.QueryRowContext(ctx, r.q.findByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.None[*models.DiaryEntry](), nil
		}
		return common.None[*models.DiaryEntry](), r.classify(err)
	}
	return common.Some(e), nil
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]*models.DiaryEntry, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.classify(err)
	}
	defer rows.Close()

	result := make([]*models.DiaryEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, r.classify(err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(err)
	}
	return result, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]*models.DiaryEntry, error) {
	return r.list(ctx, r.q.findAll)
}

func (r *SQLRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.DiaryEntry, error) {
	return r.list(ctx, r.q.findByUserID, userID)
}

func (r *SQLRepository) FindByUserIDAndMood(ctx context.Context, userID int64, mood models.Mood) ([]*models.DiaryEntry, error) {
	return r.list(ctx, r.q.findByUserIDAndMood, userID, string(mood))
}

func (r *SQLRepository) SearchByContent(ctx context.Context, userID int64, term string) ([]*models.DiaryEntry, error) {
	return r.list(ctx, r.q.searchByContent, userID, containsPattern(term))
}

func (r *SQLRepository) FindEncryptedByUserID(ctx context.Context, userID int64) ([]*models.DiaryEntry, error) {
	return r.list(ctx, r.q.findEncrypted, userID)
}

// Update overwrites title, content, mood and the encryption flag of the row
// owned by entry.UserID, stamping UpdatedAt with the current time.
func (r *SQLRepository) Update(ctx context.Context, entry *models.DiaryEntry) (int64, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return 0, err
	}

	entry.UpdatedAt = dbx.Timestamp(now())
	res, err := db.ExecContext(ctx, r.q.update,
		entry.Title, entry.Content, string(entry.Mood), entry.IsEncrypted, entry.UpdatedAt,
		entry.ID, entry.UserID)
	if err != nil {
		return 0, r.classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.classify(err)
	}
	return n, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, r.q.delete, id); err != nil {
		return r.classify(err)
	}
	return nil
}

func (r *SQLRepository) DeleteForUser(ctx context.Context, id, userID int64) (int64, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, r.q.deleteForUser, id, userID)
	if err != nil {
		return 0, r.classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.classify(err)
	}
	return n, nil
}
