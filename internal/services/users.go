package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/diarykeeper/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db          dbx.TxSource
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.PasswordHasher
	keyring     *Keyring
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db dbx.TxSource, m repomanager.RepositoryManager, hasher *cryptox.PasswordHasher, keyring *Keyring, log logging.Logger) *UserService {
	if log == nil {
		log = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		keyring:     keyring,
		log:         log,
	}
}

func (s *UserService) checkAvailability(ctx context.Context, src dbx.Source, username, email string) error {
	repo := s.repomanager.Users(src)

	taken, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: username %q is already taken", common.ErrorConflict, username)
	}

	taken, err = repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: email %q is already registered", common.ErrorConflict, email)
	}
	return nil
}

// CheckAvailability returns common.ErrorConflict with a readable message when
// username or email is already in use.
func (s *UserService) CheckAvailability(ctx context.Context, username, email string) error {
	return s.checkAvailability(ctx, s.db, strings.TrimSpace(username), strings.TrimSpace(email))
}

// Register creates an account with the default role. Input is validated
// first; a taken username or email yields common.ErrorConflict whether it is
// caught by the pre-check or by the unique constraint.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	in := validation.RegisterInput{
		Username: strings.TrimSpace(username),
		Password: password,
		Email:    strings.TrimSpace(email),
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password must be at most 72 bytes", common.ErrorValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(in.Username, hash, in.Email)
	user.KeySalt = cryptox.NewSalt()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		src := dbx.Static(tx)
		if err := s.checkAvailability(ctx, src, in.Username, in.Email); err != nil {
			return err
		}
		_, err := s.repomanager.Users(src).Save(ctx, user)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// dummy returns a hash to compare against when the username is unknown, so
// both failure paths pay for one bcrypt comparison.
func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(string(common.GenerateRandByteArray(16)))
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// Authenticate returns the user when password matches. An unknown username
// and a wrong password both yield common.ErrorUnauthorized. On success the
// user's entry key is derived and kept in the keyring until Logout.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	found, err := s.repomanager.Users(s.db).FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		s.log.Error(ctx, "user lookup failed", "error", err)
		return nil, err
	}

	user, ok := found.Get()
	if !ok {
		s.hasher.Verify(password, s.dummy())
		s.log.Warn(ctx, "authentication failed")
		return nil, common.ErrorUnauthorized
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn(ctx, "authentication failed")
		return nil, common.ErrorUnauthorized
	}

	if len(user.KeySalt) > 0 {
		key := cryptox.DeriveKey([]byte(password), user.KeySalt)
		s.keyring.Put(user.ID, key)
		common.WipeByteArray(key)
	}

	s.log.Info(ctx, "user authenticated", "user_id", user.ID)
	return user, nil
}

// Logout drops the user's entry key.
func (s *UserService) Logout(ctx context.Context, userID int64) {
	s.keyring.Forget(userID)
	s.log.Info(ctx, "user logged out", "user_id", userID)
}

func requireAdmin(actor *models.User) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: administrator role required", common.ErrorForbidden)
	}
	return nil
}

// ListUsers returns every account. Administrators only.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).FindAll(ctx)
}

// SetRole changes the role of userID. Administrators only.
func (s *UserService) SetRole(ctx context.Context, actor *models.User, userID int64, role models.Role) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := models.ParseRole(string(role)); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.db)
	found, err := repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, ok := found.Get()
	if !ok {
		return nil, fmt.Errorf("%w: user %d", common.ErrorNotFound, userID)
	}

	user.Role = role
	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user role changed", "user_id", userID, "role", string(role), "by", actor.ID)
	return user, nil
}

// EnsureAdmin makes username an administrator, registering the account first
// when it does not exist. It skips the actor check and is meant for trusted
// bootstrap tools. created reports whether a new account was made.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) (user *models.User, created bool, err error) {
	repo := s.repomanager.Users(s.db)
	found, err := repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, false, err
	}

	user, ok := found.Get()
	if !ok {
		if user, err = s.Register(ctx, username, password, email); err != nil {
			return nil, false, err
		}
		created = true
	}
	if user.IsAdmin() {
		return user, created, nil
	}

	user.Role = models.RoleAdmin
	if err := repo.Update(ctx, user); err != nil {
		return nil, created, err
	}
	s.log.Info(ctx, "administrator ensured", "user_id", user.ID, "created", created)
	return user, created, nil
}
