package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

func scanUser(row dbx.RowScanner) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &role, &u.KeySalt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("decode user %d: %w", u.ID, err)
	}
	u.Role = r
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// Save inserts user and sets its generated ID. Zero timestamps are filled
// with the current time.
func (r *SQLRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return nil, err
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}
	user.CreatedAt = dbx.Timestamp(user.CreatedAt)
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	user.UpdatedAt = dbx.Timestamp(user.UpdatedAt)
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	err = db.QueryRowContext(ctx, r.q.insert,
		user.Username, user.PasswordHash, user.Email, string(user.Role), user.KeySalt,
		user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		return nil, r.classify(err)
	}

	return user, nil
}

func (r *SQLRepository) findOne(ctx context.Context, query string, arg any) (common.Optional[*models.User], error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return common.None[*models.User](), err
	}

	u, err := scanUser(db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.None[*models.User](), nil
		}
		return common.None[*models.User](), r.classify(err)
	}
	return common.Some(u), nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (common.Optional[*models.User], error) {
	return r.findOne(ctx, r.q.findByID, id)
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (common.Optional[*models.User], error) {
	return r.findOne(ctx, r.q.findByUsername, username)
}

// FindAll returns every user ordered by id.
func (r *SQLRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, r.q.findAll)
	if err != nil {
		return nil, r.classify(err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, r.classify(err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(err)
	}
	return result, nil
}

// Update overwrites the mutable columns of the row with user.ID. UpdatedAt is
// always set to the current time; the caller's value is ignored.
func (r *SQLRepository) Update(ctx context.Context, user *models.User) error {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return err
	}

	user.UpdatedAt = dbx.Timestamp(now())
	_, err = db.ExecContext(ctx, r.q.update,
		user.Username, user.PasswordHash, user.Email, string(user.Role), user.UpdatedAt, user.ID)
	if err != nil {
		return r.classify(err)
	}
	return nil
}

// Delete removes the user. A missing id is not an error.
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

func (r *SQLRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	db, err := r.src.Conn(ctx)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := db.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, r.classify(err)
	}
	return ok, nil
}

func (r *SQLRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, r.q.existsByUsername, username)
}

func (r *SQLRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, r.q.existsByEmail, email)
}
