package users

const userColumns = `id, username, password_hash, email, role, key_salt, created_at, updated_at`

type queries struct {
	insert           string
	findByID         string
	findByUsername   string
	findAll          string
	update           string
	delete           string
	existsByUsername string
	existsByEmail    string
}

var sqliteQueries = queries{
	insert: `INSERT INTO users (username, password_hash, email, role, key_salt, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
	findByID:       `SELECT ` + userColumns + ` FROM users WHERE id = ?`,
	findByUsername: `SELECT ` + userColumns + ` FROM users WHERE username = ?`,
	findAll:        `SELECT ` + userColumns + ` FROM users ORDER BY id`,
	update: `UPDATE users
		 SET username = ?, password_hash = ?, email = ?, role = ?, updated_at = ?
		 WHERE id = ?`,
	delete:           `DELETE FROM users WHERE id = ?`,
	existsByUsername: `SELECT EXISTS (SELECT 1 FROM users WHERE username = ?)`,
	existsByEmail:    `SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`,
}

var postgresQueries = queries{
	insert: `INSERT INTO users (username, password_hash, email, role, key_salt, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
	findByID:       `SELECT ` + userColumns + ` FROM users WHERE id = $1`,
	findByUsername: `SELECT ` + userColumns + ` FROM users WHERE username = $1`,
	findAll:        `SELECT ` + userColumns + ` FROM users ORDER BY id`,
	update: `UPDATE users
		 SET username = $1, password_hash = $2, email = $3, role = $4, updated_at = $5
		 WHERE id = $6`,
	delete:           `DELETE FROM users WHERE id = $1`,
	existsByUsername: `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
	existsByEmail:    `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
}
