// Package entries persists diary entries. Every list is ordered most recent
// first, with the id breaking ties between equal creation times.
package entries

import (
	"context"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
)

type Repository interface {
	Save(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	FindByID(ctx context.Context, id int64) (common.Optional[*models.DiaryEntry], error)
	// FindAll lists entries of every user. Administrative use only.
	FindAll(ctx context.Context) ([]*models.DiaryEntry, error)
	// Update matches on both id and user id and reports the rows affected;
	// a foreign owner affects zero rows and is not an error.
	Update(ctx context.Context, entry *models.DiaryEntry) (int64, error)
	// Delete removes by id without an ownership check.
	Delete(ctx context.Context, id int64) error
	DeleteForUser(ctx context.Context, id, userID int64) (int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]*models.DiaryEntry, error)
	FindByUserIDAndMood(ctx context.Context, userID int64, mood models.Mood) ([]*models.DiaryEntry, error)
	// SearchByContent matches term as a literal substring of unencrypted
	// content. Blank terms are the caller's concern.
	SearchByContent(ctx context.Context, userID int64, term string) ([]*models.DiaryEntry, error)
	FindEncryptedByUserID(ctx context.Context, userID int64) ([]*models.DiaryEntry, error)
}
