package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT     PRIMARY KEY,
		user_name  TEXT     NOT NULL,
		role       TEXT     NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		id         TEXT    PRIMARY KEY,
		session_id TEXT    NOT NULL DEFAULT '',
		file_name  TEXT    NOT NULL,
		total      INTEGER NOT NULL CHECK (total >= 0),
		positive   INTEGER NOT NULL DEFAULT 0,
		negative   INTEGER NOT NULL DEFAULT 0,
		neutral    INTEGER NOT NULL DEFAULT 0,
		top_keywords TEXT  NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_session
		ON analyses (session_id, created_at)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}
