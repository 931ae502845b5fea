package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/entries"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/diarykeeper/internal/validation"
)

// now is a seam for tests.
var now = time.Now

// DiaryService exposes the entry operations. Entries flagged IsEncrypted are
// sealed before they reach the repository and opened on the way out while
// the owner's key is in the keyring.
type DiaryService struct {
	db          dbx.Source
	repomanager repomanager.RepositoryManager
	keyring     *Keyring
	log         logging.Logger
}

func NewDiaryService(db dbx.Source, m repomanager.RepositoryManager, keyring *Keyring, log logging.Logger) *DiaryService {
	if log == nil {
		log = logging.Nop()
	}
	return &DiaryService{db: db, repomanager: m, keyring: keyring, log: log}
}

func (s *DiaryService) repo() entries.Repository {
	return s.repomanager.Entries(s.db)
}

// validateEntry rejects a nil entry, a missing owner, blank content and a
// missing or unknown mood.
func validateEntry(entry *models.DiaryEntry) error {
	return validation.Struct(entry)
}

// sealed returns the form of entry to persist.
func (s *DiaryService) sealed(entry *models.DiaryEntry) (*models.DiaryEntry, error) {
	stored := *entry
	if !entry.IsEncrypted {
		return &stored, nil
	}

	key, ok := s.keyring.Get(entry.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: sign in again to write encrypted entries", common.ErrorLocked)
	}
	defer common.WipeByteArray(key)

	content, err := cryptox.SealText(entry.Content, key)
	if err != nil {
		return nil, fmt.Errorf("seal entry: %w", err)
	}
	stored.Content = content
	return &stored, nil
}

// open decrypts entry in place when its owner's key is held. Entries that
// cannot be opened keep their sealed content and are marked Sealed.
func (s *DiaryService) open(ctx context.Context, entry *models.DiaryEntry) bool {
	entry.Sealed = false
	if !entry.IsEncrypted {
		return true
	}
	key, ok := s.keyring.Get(entry.UserID)
	if !ok {
		entry.Sealed = true
		return false
	}
	defer common.WipeByteArray(key)

	plain, err := cryptox.OpenText(entry.Content, key)
	if err != nil {
		s.log.Warn(ctx, "cannot open encrypted entry", "entry_id", entry.ID, "error", err)
		entry.Sealed = true
		return false
	}
	entry.Content = plain
	return true
}

func (s *DiaryService) openAll(ctx context.Context, list []*models.DiaryEntry) []*models.DiaryEntry {
	for _, e := range list {
		s.open(ctx, e)
	}
	return list
}

// SaveEntry validates and persists a new entry. CreatedAt is stamped when
// unset, UpdatedAt always, and a blank title becomes "Entry - <date>".
func (s *DiaryService) SaveEntry(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	ts := dbx.Timestamp(now())
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = ts
	}
	entry.CreatedAt = dbx.Timestamp(entry.CreatedAt)
	entry.UpdatedAt = ts
	if strings.TrimSpace(entry.Title) == "" {
		entry.Title = models.DefaultTitle(entry.CreatedAt)
	}

	stored, err := s.sealed(entry)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo().Save(ctx, stored); err != nil {
		s.log.Error(ctx, "save entry failed", "user_id", entry.UserID, "error", err)
		return nil, fmt.Errorf("error saving entry: %w", err)
	}
	entry.ID = stored.ID

	s.log.Info(ctx, "entry saved", "entry_id", entry.ID, "user_id", entry.UserID, "encrypted", entry.IsEncrypted)
	return entry, nil
}

// UpdateEntry validates entry and overwrites the stored row with the same id
// and owner. A row owned by someone else is left untouched without error.
// An entry still Sealed is refused so its ciphertext is never sealed twice.
func (s *DiaryService) UpdateEntry(ctx context.Context, entry *models.DiaryEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if entry.ID == 0 {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	if entry.Sealed {
		return fmt.Errorf("%w: entry %d could not be decrypted", common.ErrorLocked, entry.ID)
	}

	entry.UpdatedAt = dbx.Timestamp(now())
	if strings.TrimSpace(entry.Title) == "" {
		created := entry.CreatedAt
		if created.IsZero() {
			created = entry.UpdatedAt
		}
		entry.Title = models.DefaultTitle(created)
	}

	stored, err := s.sealed(entry)
	if err != nil {
		return err
	}
	n, err := s.repo().Update(ctx, stored)
	if err != nil {
		s.log.Error(ctx, "update entry failed", "entry_id", entry.ID, "error", err)
		return fmt.Errorf("error updating entry: %w", err)
	}
	entry.UpdatedAt = stored.UpdatedAt

	if n == 0 {
		s.log.Warn(ctx, "update matched no entry", "entry_id", entry.ID, "user_id", entry.UserID)
		return nil
	}
	s.log.Info(ctx, "entry updated", "entry_id", entry.ID, "user_id", entry.UserID)
	return nil
}

// DeleteEntry removes entry id if it belongs to userID. Missing or foreign
// entries are not an error.
func (s *DiaryService) DeleteEntry(ctx context.Context, userID, id int64) error {
	n, err := s.repo().DeleteForUser(ctx, id, userID)
	if err != nil {
		s.log.Error(ctx, "delete entry failed", "entry_id", id, "error", err)
		return fmt.Errorf("error deleting entry: %w", err)
	}
	if n > 0 {
		s.log.Info(ctx, "entry deleted", "entry_id", id, "user_id", userID)
	}
	return nil
}

// GetUserEntries lists the user's entries, most recent first.
func (s *DiaryService) GetUserEntries(ctx context.Context, userID int64) ([]*models.DiaryEntry, error) {
	list, err := s.repo().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.openAll(ctx, list), nil
}

// GetEntriesByMood lists the user's entries tagged mood, most recent first.
func (s *DiaryService) GetEntriesByMood(ctx context.Context, userID int64, mood models.Mood) ([]*models.DiaryEntry, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, mood)
	}
	list, err := s.repo().FindByUserIDAndMood(ctx, userID, mood)
	if err != nil {
		return nil, err
	}
	return s.openAll(ctx, list), nil
}

// SearchEntries returns the user's entries whose content contains term.
// A blank term returns every entry. Encrypted entries are searched after
// decryption, case-insensitively, and only while the key is held.
func (s *DiaryService) SearchEntries(ctx context.Context, userID int64, term string) ([]*models.DiaryEntry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetUserEntries(ctx, userID)
	}

	repo := s.repo()
	result, err := repo.SearchByContent(ctx, userID, term)
	if err != nil {
		return nil, err
	}
	if !s.keyring.Has(userID) {
		return result, nil
	}

	sealed, err := repo.FindEncryptedByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	for _, e := range sealed {
		if s.open(ctx, e) && strings.Contains(strings.ToLower(e.Content), needle) {
			result = append(result, e)
		}
	}

	slices.SortStableFunc(result, newestFirst)
	return result, nil
}

func newestFirst(a, b *models.DiaryEntry) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// GetEntryByID returns the entry or None.
func (s *DiaryService) GetEntryByID(ctx context.Context, id int64) (common.Optional[*models.DiaryEntry], error) {
	found, err := s.repo().FindByID(ctx, id)
	if err != nil {
		return common.None[*models.DiaryEntry](), err
	}
	if e, ok := found.Get(); ok {
		s.open(ctx, e)
	}
	return found, nil
}

// GetRecentEntries returns at most limit of the user's newest entries.
func (s *DiaryService) GetRecentEntries(ctx context.Context, userID int64, limit int) ([]*models.DiaryEntry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", common.ErrorValidation)
	}
	list, err := s.GetUserEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// AllEntries lists entries of every user. Administrators only; entries of
// other users stay sealed when encrypted.
func (s *DiaryService) AllEntries(ctx context.Context, actor *models.User) ([]*models.DiaryEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	list, err := s.repo().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.openAll(ctx, list), nil
}
