// Package users persists accounts. One SQLRepository serves every supported
// dialect; only the query text and error classifier differ.
package users

import (
	"context"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
)

type Repository interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (common.Optional[*models.User], error)
	FindByUsername(ctx context.Context, username string) (common.Optional[*models.User], error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
