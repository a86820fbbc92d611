package repository

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

const (
	// SQLite is single-writer; high connection counts are counterproductive.
	maxOpenConns = 10
	maxIdleConns = 2
)

// Schema holds the full DDL for the notes database. Statements are
// idempotent so the schema can be applied on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT,
    created_at TIMESTAMP NOT NULL,
    modified_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_modified_at ON notes(modified_at);
`

// OpenDB opens (creating if needed) the SQLite database at path and applies
// the schema. A non-empty encryptionKey enables SQLCipher at-rest encryption.
func OpenDB(path, encryptionKey string) (*sql.DB, error) {
	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL"
	if encryptionKey != "" {
		dsn += "&_pragma_key=" + url.QueryEscape(encryptionKey)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}
