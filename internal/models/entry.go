package models

import (
	"fmt"
	"strings"
	"time"
)

// Mood tags how the author felt when writing an entry.
type Mood string

const (
	MoodHappy    Mood = "HAPPY"
	MoodSad      Mood = "SAD"
	MoodExcited  Mood = "EXCITED"
	MoodCalm     Mood = "CALM"
	MoodAnxious  Mood = "ANXIOUS"
	MoodAngry    Mood = "ANGRY"
	MoodGrateful Mood = "GRATEFUL"
	MoodTired    Mood = "TIRED"
	MoodNeutral  Mood = "NEUTRAL"
)

// Moods lists every valid mood in display order.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodExcited, MoodCalm, MoodAnxious,
	MoodAngry, MoodGrateful, MoodTired, MoodNeutral,
}

// Valid reports whether m belongs to the closed mood set.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// ParseMood decodes a mood name. Input is matched case-insensitively so the
// same function serves stored columns and user input.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// DiaryEntry is a single journal entry owned by exactly one user.
//
// When IsEncrypted is set, Content holds the sealed form while at rest and
// the plaintext only after the owning service has opened it. Sealed is not
// persisted; it marks an encrypted entry whose Content could not be opened.
type DiaryEntry struct {
	ID          int64
	Title       string `validate:"max=255"`
	Content     string `validate:"notblank"`
	UserID      int64  `validate:"required"`
	Mood        Mood   `validate:"required,mood"`
	IsEncrypted bool
	Sealed      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDiaryEntry builds an unsaved, unencrypted entry.
func NewDiaryEntry(title, content string, userID int64, mood Mood) *DiaryEntry {
	return &DiaryEntry{
		Title:   title,
		Content: content,
		UserID:  userID,
		Mood:    mood,
	}
}

// DefaultTitle is the title given to entries saved without one.
func DefaultTitle(t time.Time) string {
	return "Entry - " + t.Format("2006-01-02")
}
