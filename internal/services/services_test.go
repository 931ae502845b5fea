package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/diarykeeper/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	gw      *storage.Gateway
	rm      repomanager.RepositoryManager
	keyring *Keyring
	users   *UserService
	diary   *DiaryService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gw, err := storage.Open(context.Background(), storage.Options{
		Dialect: storage.DialectSQLite,
		DSN:     "file:" + filepath.Join(t.TempDir(), "diary.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	rm, err := repomanager.New(gw.Dialect())
	require.NoError(t, err)

	kr := NewKeyring()
	return &env{
		gw:      gw,
		rm:      rm,
		keyring: kr,
		users:   NewUserService(gw, rm, cryptox.NewPasswordHasher(bcrypt.MinCost), kr, nil),
		diary:   NewDiaryService(gw, rm, kr, nil),
	}
}

func (e *env) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), name, name+"-pw", name+"@example.com")
	require.NoError(t, err)
	return u
}

func (e *env) login(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Authenticate(context.Background(), name, name+"-pw")
	require.NoError(t, err)
	return u
}

// tickingClock makes every call to now return a time one minute later.
func tickingClock(t *testing.T) {
	t.Helper()
	cur := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time {
		cur = cur.Add(time.Minute)
		return cur
	}
	t.Cleanup(func() { now = orig })
}
