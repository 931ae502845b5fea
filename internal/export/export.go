// Package export renders a single diary entry as plain text and writes it to
// a local directory.
package export

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/diarykeeper/internal/filex"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
)

const dateLayout = "Jan 02, 2006 15:04"

// Render formats entry as:
//
//	Title: <title>
//	Date: <Jan 02, 2006 15:04>
//	Mood: <MOOD>
//
//	<content>
func Render(entry *models.DiaryEntry) string {
	return fmt.Sprintf("Title: %s\nDate: %s\nMood: %s\n\n%s\n",
		entry.Title, entry.CreatedAt.Format(dateLayout), entry.Mood, entry.Content)
}

// FileName is <yyyyMMdd>_<sanitized title>.txt.
func FileName(entry *models.DiaryEntry) string {
	return entry.CreatedAt.Format("20060102") + "_" + filex.SanitizeName(entry.Title) + ".txt"
}

// WriteFile renders entry into dir, creating dir when missing, and returns
// the path of the written file.
func WriteFile(dir string, entry *models.DiaryEntry) (string, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}

	path := filepath.Join(abs, FileName(entry))
	if err := filex.WriteFile(path, []byte(Render(entry))); err != nil {
		return "", fmt.Errorf("export entry %d: %w", entry.ID, err)
	}
	return path, nil
}
