package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) write(t *testing.T, userID int64, content string, mood models.Mood) *models.DiaryEntry {
	t.Helper()
	saved, err := e.diary.SaveEntry(context.Background(), models.NewDiaryEntry("", content, userID, mood))
	require.NoError(t, err)
	return saved
}

func entryIDs(list []*models.DiaryEntry) []int64 {
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func TestSaveEntry_RoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")

	in := models.NewDiaryEntry("Day one", "dear diary", alice.ID, models.MoodHappy)
	saved, err := e.diary.SaveEntry(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	found, err := e.diary.GetEntryByID(ctx, saved.ID)
	require.NoError(t, err)
	got, ok := found.Get()
	require.True(t, ok)

	assert.Equal(t, saved.Title, got.Title)
	assert.Equal(t, saved.Content, got.Content)
	assert.Equal(t, saved.UserID, got.UserID)
	assert.Equal(t, saved.Mood, got.Mood)
	assert.Equal(t, saved.IsEncrypted, got.IsEncrypted)
	assert.Equal(t, saved.CreatedAt, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestSaveEntry_StampsAndDefaults(t *testing.T) {
	e := newEnv(t)
	tickingClock(t)
	alice := e.register(t, "alice")

	saved := e.write(t, alice.ID, "no title", models.MoodCalm)
	assert.Equal(t, "Entry - 2024-05-01", saved.Title)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 1, 0, 0, time.UTC), saved.CreatedAt)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	preset := models.NewDiaryEntry("Backdated", "old memory", alice.ID, models.MoodTired)
	preset.CreatedAt = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := e.diary.SaveEntry(context.Background(), preset)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), got.CreatedAt, "caller's creation time is kept")
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestSaveEntry_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")

	tests := []struct {
		name  string
		entry *models.DiaryEntry
	}{
		{"nil", nil},
		{"blank content", models.NewDiaryEntry("t", "   ", alice.ID, models.MoodHappy)},
		{"no owner", models.NewDiaryEntry("t", "c", 0, models.MoodHappy)},
		{"no mood", models.NewDiaryEntry("t", "c", alice.ID, "")},
		{"bad mood", models.NewDiaryEntry("t", "c", alice.ID, "GRUMPY")},
		{"title too long", models.NewDiaryEntry(strings.Repeat("t", 256), "c", alice.ID, models.MoodHappy)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.diary.SaveEntry(ctx, tt.entry)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	list, err := e.diary.GetUserEntries(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveEntry_UnknownOwner(t *testing.T) {
	e := newEnv(t)

	_, err := e.diary.SaveEntry(context.Background(), models.NewDiaryEntry("t", "c", 12345, models.MoodHappy))
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestGetUserEntries_NewestFirst(t *testing.T) {
	e := newEnv(t)
	tickingClock(t)
	alice := e.register(t, "alice")

	e1 := e.write(t, alice.ID, "one", models.MoodCalm)
	e2 := e.write(t, alice.ID, "two", models.MoodCalm)
	e3 := e.write(t, alice.ID, "three", models.MoodCalm)

	list, err := e.diary.GetUserEntries(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{e3.ID, e2.ID, e1.ID}, entryIDs(list))
}

func TestUpdateEntry(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")

	entry := e.write(t, alice.ID, "original", models.MoodCalm)

	t.Run("foreign owner affects nothing", func(t *testing.T) {
		hijack := *entry
		hijack.UserID = bob.ID
		hijack.Content = "hijacked"
		require.NoError(t, e.diary.UpdateEntry(ctx, &hijack))

		found, err := e.diary.GetEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		got, _ := found.Get()
		assert.Equal(t, "original", got.Content)
	})

	t.Run("owner updates", func(t *testing.T) {
		edit := *entry
		edit.Content = "edited"
		edit.Mood = models.MoodGrateful
		require.NoError(t, e.diary.UpdateEntry(ctx, &edit))

		found, err := e.diary.GetEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		got, _ := found.Get()
		assert.Equal(t, "edited", got.Content)
		assert.Equal(t, models.MoodGrateful, got.Mood)
		assert.False(t, got.UpdatedAt.Before(entry.UpdatedAt))
	})

	t.Run("validation", func(t *testing.T) {
		blank := *entry
		blank.Content = ""
		require.ErrorIs(t, e.diary.UpdateEntry(ctx, &blank), common.ErrorValidation)

		noID := *entry
		noID.ID = 0
		require.ErrorIs(t, e.diary.UpdateEntry(ctx, &noID), common.ErrorValidation)
	})
}

func TestDeleteEntry_IsOwnerScoped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")

	entry := e.write(t, alice.ID, "mine", models.MoodCalm)

	require.NoError(t, e.diary.DeleteEntry(ctx, bob.ID, entry.ID))
	found, err := e.diary.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, found.IsPresent())

	require.NoError(t, e.diary.DeleteEntry(ctx, alice.ID, entry.ID))
	require.NoError(t, e.diary.DeleteEntry(ctx, alice.ID, entry.ID), "missing id is not an error")
	found, err = e.diary.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, found.IsPresent())
}

func TestSearchEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tickingClock(t)
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")

	f1 := e.write(t, alice.ID, "foo at start", models.MoodCalm)
	e.write(t, alice.ID, "nothing here", models.MoodCalm)
	f2 := e.write(t, alice.ID, "ends with foo", models.MoodCalm)
	e.write(t, bob.ID, "bob's foo", models.MoodCalm)

	all, err := e.diary.GetUserEntries(ctx, alice.ID)
	require.NoError(t, err)

	blank, err := e.diary.SearchEntries(ctx, alice.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, entryIDs(all), entryIDs(blank))

	got, err := e.diary.SearchEntries(ctx, alice.ID, " foo ")
	require.NoError(t, err)
	assert.Equal(t, []int64{f2.ID, f1.ID}, entryIDs(got))
}

func TestGetEntriesByMood(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tickingClock(t)
	alice := e.register(t, "alice")

	h := e.write(t, alice.ID, "yay", models.MoodHappy)
	e.write(t, alice.ID, "hmm", models.MoodAnxious)

	list, err := e.diary.GetEntriesByMood(ctx, alice.ID, models.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, []int64{h.ID}, entryIDs(list))

	_, err = e.diary.GetEntriesByMood(ctx, alice.ID, "GRUMPY")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestGetRecentEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tickingClock(t)
	alice := e.register(t, "alice")

	var saved []*models.DiaryEntry
	for i := 0; i < 5; i++ {
		saved = append(saved, e.write(t, alice.ID, fmt.Sprintf("entry %d", i), models.MoodNeutral))
	}

	recent, err := e.diary.GetRecentEntries(ctx, alice.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{saved[4].ID, saved[3].ID}, entryIDs(recent))

	recent, err = e.diary.GetRecentEntries(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = e.diary.GetRecentEntries(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)

	_, err = e.diary.GetRecentEntries(ctx, alice.ID, -1)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestAllEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tickingClock(t)
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")

	a := e.write(t, alice.ID, "a", models.MoodCalm)
	b := e.write(t, bob.ID, "b", models.MoodCalm)

	_, err := e.diary.AllEntries(ctx, alice)
	require.ErrorIs(t, err, common.ErrorForbidden)

	admin := *alice
	admin.Role = models.RoleAdmin
	list, err := e.diary.AllEntries(ctx, &admin)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, entryIDs(list))
}

func TestEncryptedEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tickingClock(t)
	alice := e.register(t, "alice")

	locked := models.NewDiaryEntry("secret", "hidden treasure", alice.ID, models.MoodExcited)
	locked.IsEncrypted = true
	_, err := e.diary.SaveEntry(ctx, locked)
	require.ErrorIs(t, err, common.ErrorLocked, "no key before login")

	e.login(t, "alice")
	plain := e.write(t, alice.ID, "treasure map is plain", models.MoodCalm)

	enc := models.NewDiaryEntry("secret", "Hidden Treasure", alice.ID, models.MoodExcited)
	enc.IsEncrypted = true
	saved, err := e.diary.SaveEntry(ctx, enc)
	require.NoError(t, err)
	assert.Equal(t, "Hidden Treasure", saved.Content, "caller keeps plaintext")

	raw, err := e.rm.Entries(e.gw).FindByID(ctx, saved.ID)
	require.NoError(t, err)
	stored, _ := raw.Get()
	assert.NotContains(t, stored.Content, "Treasure", "content is sealed at rest")

	found, err := e.diary.GetEntryByID(ctx, saved.ID)
	require.NoError(t, err)
	got, _ := found.Get()
	assert.Equal(t, "Hidden Treasure", got.Content)

	hits, err := e.diary.SearchEntries(ctx, alice.ID, "treasure")
	require.NoError(t, err)
	assert.Equal(t, []int64{saved.ID, plain.ID}, entryIDs(hits))

	e.users.Logout(ctx, alice.ID)

	hits, err = e.diary.SearchEntries(ctx, alice.ID, "Hidden")
	require.NoError(t, err)
	assert.Empty(t, hits, "sealed content is not searchable without the key")

	found, err = e.diary.GetEntryByID(ctx, saved.ID)
	require.NoError(t, err)
	got, _ = found.Get()
	assert.Equal(t, stored.Content, got.Content, "sealed text is returned unchanged")
}

func TestUpdateEntry_RefusesSealed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	e.login(t, "alice")

	enc := models.NewDiaryEntry("secret", "under the oak", alice.ID, models.MoodCalm)
	enc.IsEncrypted = true
	saved, err := e.diary.SaveEntry(ctx, enc)
	require.NoError(t, err)

	found, err := e.diary.GetEntryByID(ctx, saved.ID)
	require.NoError(t, err)
	opened, _ := found.Get()
	assert.False(t, opened.Sealed)

	raw, err := e.rm.Entries(e.gw).FindByID(ctx, saved.ID)
	require.NoError(t, err)
	before, _ := raw.Get()

	e.users.Logout(ctx, alice.ID)

	found, err = e.diary.GetEntryByID(ctx, saved.ID)
	require.NoError(t, err)
	got, _ := found.Get()
	require.True(t, got.Sealed)

	got.Title = "renamed"
	require.ErrorIs(t, e.diary.UpdateEntry(ctx, got), common.ErrorLocked)

	raw, err = e.rm.Entries(e.gw).FindByID(ctx, saved.ID)
	require.NoError(t, err)
	after, _ := raw.Get()
	assert.Equal(t, "secret", after.Title)
	assert.Equal(t, before.Content, after.Content)

	e.login(t, "alice")
	found, err = e.diary.GetEntryByID(ctx, saved.ID)
	require.NoError(t, err)
	got, _ = found.Get()
	assert.False(t, got.Sealed)
	assert.Equal(t, "under the oak", got.Content)
}
