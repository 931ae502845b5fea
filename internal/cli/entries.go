package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/export"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
)

var errEntryNotFound = errors.New("entry not found")

func moodChoices() string {
	names := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// ownEntry loads entry id if it belongs to the session user. Foreign and
// missing entries are reported the same way.
func (a *App) ownEntry(ctx context.Context, id int64) (*models.DiaryEntry, error) {
	found, err := a.diary.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e, ok := found.Get()
	if !ok || e.UserID != a.user.ID {
		return nil, fmt.Errorf("%w: #%d", errEntryNotFound, id)
	}
	return e, nil
}

func formatEntryLine(e *models.DiaryEntry) string {
	lock := ""
	if e.IsEncrypted {
		lock = " [encrypted]"
	}
	return fmt.Sprintf("#%-4d %s  %-8s %s%s",
		e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Mood, e.Title, lock)
}

func (a *App) printEntries(list []*models.DiaryEntry) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return
	}
	for _, e := range list {
		fmt.Fprintln(a.out, formatEntryLine(e))
	}
}

func (a *App) askMood(prompt string, allowEmpty bool) (models.Mood, error) {
	for {
		s, err := getSimpleText(a.reader, prompt+" ("+moodChoices()+")", a.out)
		if err != nil {
			return "", err
		}
		if s == "" && allowEmpty {
			return "", nil
		}
		m, err := models.ParseMood(s)
		if err == nil {
			return m, nil
		}
		fmt.Fprintln(a.out, err)
	}
}

// Write composes a new entry: title, mood, multi-line content and whether to
// encrypt it.
func (a *App) Write(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title (empty for default)", a.out)
	if err != nil {
		return err
	}
	mood, err := a.askMood("Mood", false)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	encrypt, err := getYesNo(a.reader, "Encrypt content?", a.out)
	if err != nil {
		return err
	}

	entry := models.NewDiaryEntry(title, content, a.user.ID, mood)
	entry.IsEncrypted = encrypt
	saved, err := a.diary.SaveEntry(ctx, entry)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved entry #%d %q\n", saved.ID, saved.Title)
	return nil
}

// List prints every entry of the session user.
func (a *App) List(ctx context.Context) error {
	list, err := a.diary.GetUserEntries(ctx, a.user.ID)
	if err != nil {
		return err
	}
	a.printEntries(list)
	return nil
}

// Mood prints the session user's entries tagged with args[0].
func (a *App) Mood(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mood <%s>", moodChoices())
	}
	mood, err := models.ParseMood(args[0])
	if err != nil {
		return err
	}
	list, err := a.diary.GetEntriesByMood(ctx, a.user.ID, mood)
	if err != nil {
		return err
	}
	a.printEntries(list)
	return nil
}

// Search prints the session user's entries containing the rest of the line.
func (a *App) Search(ctx context.Context, args []string) error {
	list, err := a.diary.SearchEntries(ctx, a.user.ID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printEntries(list)
	return nil
}

// Recent prints the n newest entries, n defaulting to the configured limit.
func (a *App) Recent(ctx context.Context, args []string) error {
	limit := a.opts.RecentLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: recent [n]")
		}
		limit = n
	}
	list, err := a.diary.GetRecentEntries(ctx, a.user.ID, limit)
	if err != nil {
		return err
	}
	a.printEntries(list)
	return nil
}

// Show prints one entry of the session user in export layout.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		return err
	}
	e, err := a.ownEntry(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, formatEntryLine(e))
	fmt.Fprint(a.out, export.Render(e))
	return nil
}

// Edit prompts for a new title, mood and content. Empty answers keep the
// current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	e, err := a.ownEntry(ctx, id)
	if err != nil {
		return err
	}
	if e.Sealed {
		return fmt.Errorf("%w: entry #%d cannot be decrypted", common.ErrorLocked, e.ID)
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", e.Title), a.out)
	if err != nil {
		return err
	}
	mood, err := a.askMood(fmt.Sprintf("Mood [%s]", e.Mood), true)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}

	if title != "" {
		e.Title = title
	}
	if mood != "" {
		e.Mood = mood
	}
	if content != "" {
		e.Content = content
	}

	if err := a.diary.UpdateEntry(ctx, e); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated entry #%d\n", e.ID)
	return nil
}

// Delete removes one entry of the session user.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	if _, err := a.ownEntry(ctx, id); err != nil {
		return err
	}
	if err := a.diary.DeleteEntry(ctx, a.user.ID, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted entry #%d\n", id)
	return nil
}

// Export writes one entry of the session user to the export directory.
func (a *App) Export(ctx context.Context, args []string) error {
	id, err := parseID(args, "export <id>")
	if err != nil {
		return err
	}
	e, err := a.ownEntry(ctx, id)
	if err != nil {
		return err
	}
	path, err := export.WriteFile(a.opts.ExportDir, e)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "entry exported", "entry_id", e.ID, "path", path)
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}
