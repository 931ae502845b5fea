package entries

const (
	entryColumns = `id, title, content, user_id, mood, is_encrypted, created_at, updated_at`
	newestFirst  = ` ORDER BY created_at DESC, id DESC`
)

type queries struct {
	insert              string
	findByID            string
	findAll             string
	update              string
	delete              string
	deleteForUser       string
	findByUserID        string
	findByUserIDAndMood string
	searchByContent     string
	findEncrypted       string
}

var sqliteQueries = queries{
	insert: `INSERT INTO diary_entries (title, content, user_id, mood, is_encrypted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
	findByID: `SELECT ` + entryColumns + ` FROM diary_entries WHERE id = ?`,
	findAll:  `SELECT ` + entryColumns + ` FROM diary_entries` + newestFirst,
	update: `UPDATE diary_entries
		 SET title = ?, content = ?, mood = ?, is_encrypted = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
	delete:              `DELETE FROM diary_entries WHERE id = ?`,
	deleteForUser:       `DELETE FROM diary_entries WHERE id = ? AND user_id = ?`,
	findByUserID:        `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = ?` + newestFirst,
	findByUserIDAndMood: `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = ? AND mood = ?` + newestFirst,
	searchByContent: `SELECT ` + entryColumns + ` FROM diary_entries
		 WHERE user_id = ? AND NOT is_encrypted AND content LIKE ? ESCAPE '\'` + newestFirst,
	findEncrypted: `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = ? AND is_encrypted` + newestFirst,
}

var postgresQueries = queries{
	insert: `INSERT INTO diary_entries (title, content, user_id, mood, is_encrypted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
	findByID: `SELECT ` + entryColumns + ` FROM diary_entries WHERE id = $1`,
	findAll:  `SELECT ` + entryColumns + ` FROM diary_entries` + newestFirst,
	update: `UPDATE diary_entries
		 SET title = $1, content = $2, mood = $3, is_encrypted = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7`,
	delete:              `DELETE FROM diary_entries WHERE id = $1`,
	deleteForUser:       `DELETE FROM diary_entries WHERE id = $1 AND user_id = $2`,
	findByUserID:        `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = $1` + newestFirst,
	findByUserIDAndMood: `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = $1 AND mood = $2` + newestFirst,
	searchByContent: `SELECT ` + entryColumns + ` FROM diary_entries
		 WHERE user_id = $1 AND NOT is_encrypted AND content LIKE $2 ESCAPE '\'` + newestFirst,
	findEncrypted: `SELECT ` + entryColumns + ` FROM diary_entries WHERE user_id = $1 AND is_encrypted` + newestFirst,
}
