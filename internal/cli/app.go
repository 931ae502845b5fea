package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/google/uuid"
)

// AccountService is the part of services.UserService the terminal uses.
type AccountService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context, userID int64)
	ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error)
	SetRole(ctx context.Context, actor *models.User, userID int64, role models.Role) (*models.User, error)
}

// EntryService is the part of services.DiaryService the terminal uses.
type EntryService interface {
	SaveEntry(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	UpdateEntry(ctx context.Context, entry *models.DiaryEntry) error
	DeleteEntry(ctx context.Context, userID, id int64) error
	GetUserEntries(ctx context.Context, userID int64) ([]*models.DiaryEntry, error)
	GetEntriesByMood(ctx context.Context, userID int64, mood models.Mood) ([]*models.DiaryEntry, error)
	SearchEntries(ctx context.Context, userID int64, term string) ([]*models.DiaryEntry, error)
	GetEntryByID(ctx context.Context, id int64) (common.Optional[*models.DiaryEntry], error)
	GetRecentEntries(ctx context.Context, userID int64, limit int) ([]*models.DiaryEntry, error)
	AllEntries(ctx context.Context, actor *models.User) ([]*models.DiaryEntry, error)
}

// Options carries the settings the terminal needs from config.Config.
type Options struct {
	ExportDir   string
	RecentLimit int
}

type App struct {
	accounts AccountService
	diary    EntryService
	opts     Options

	reader *bufio.Reader
	out    io.Writer

	baseLog logging.Logger
	log     logging.Logger

	user      *models.User
	sessionID string
}

func NewApp(accounts AccountService, diary EntryService, opts Options, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		accounts: accounts,
		diary:    diary,
		opts:     opts,
		reader:   bufio.NewReader(in),
		out:      out,
		baseLog:  log,
		log:      log,
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	if a.user.IsAdmin() {
		return fmt.Sprintf("(%s admin)", a.user.Username)
	}
	return fmt.Sprintf("(%s)", a.user.Username)
}

// startSession remembers u as the signed-in user and tags every further log
// line with a fresh session id.
func (a *App) startSession(u *models.User) {
	a.user = u
	a.sessionID = uuid.NewString()
	a.log = a.baseLog.With("session", a.sessionID, "user_id", u.ID)
}

func (a *App) endSession(ctx context.Context) {
	if a.user == nil {
		return
	}
	a.accounts.Logout(ctx, a.user.ID)
	a.log.Info(ctx, "session closed")
	a.user = nil
	a.sessionID = ""
	a.log = a.baseLog
}

// Run starts the command loop and blocks until exit or end of input. The
// session key is dropped on return.
func (a *App) Run(ctx context.Context) {
	defer a.endSession(ctx)

	fmt.Fprintln(a.out, "Welcome to DiaryKeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
