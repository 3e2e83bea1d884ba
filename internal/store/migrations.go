package store

import (
	"database/sql"
	"fmt"
)

// migration is a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE IF NOT EXISTS datasets (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				uid TEXT UNIQUE NOT NULL,
				path TEXT NOT NULL,
				sha256 TEXT NOT NULL,
				column_name TEXT NOT NULL,
				word_count INTEGER NOT NULL DEFAULT 0,
				imported_at TEXT NOT NULL DEFAULT (datetime('now')),
				UNIQUE (sha256, column_name)
			);

			CREATE TABLE IF NOT EXISTS dataset_words (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				dataset_id INTEGER NOT NULL,
				word TEXT NOT NULL,
				weight REAL NOT NULL,
				FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE,
				UNIQUE (dataset_id, word)
			);
			CREATE INDEX IF NOT EXISTS idx_dataset_words_dataset ON dataset_words(dataset_id);
		`,
	},
}

// migrate applies all pending migrations in order.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec(
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func currentVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}
