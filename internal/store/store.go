// Package store caches imported word-frequency maps in a SQLite database so
// repeated analyses of the same dataset file skip the CSV parse. Cache
// entries are keyed by the dataset file's content hash and the weight
// column used.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dbFileName = "cache.db"

// Path returns the cache database path inside the ngramlex directory.
func Path(ngramlexDir string) string {
	return filepath.Join(ngramlexDir, dbFileName)
}

// Store wraps the cache database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at dbPath and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores the frequencies imported from the dataset at path (with
// content hash sha256, weight column column) and returns the new dataset's
// uid. An existing entry for the same (sha256, column) is replaced.
func (s *Store) Put(path, sha256, column string, freqs map[string]float64) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback() //nolint:errcheck

	var oldID int64
	err = tx.QueryRow(
		`SELECT id FROM datasets WHERE sha256 = ? AND column_name = ?`,
		sha256, column,
	).Scan(&oldID)
	switch {
	case err == sql.ErrNoRows:
		// First import for this key.
	case err != nil:
		return "", err
	default:
		if _, err := tx.Exec(`DELETE FROM dataset_words WHERE dataset_id = ?`, oldID); err != nil {
			return "", err
		}
		if _, err := tx.Exec(`DELETE FROM datasets WHERE id = ?`, oldID); err != nil {
			return "", err
		}
	}

	uid := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(
		`INSERT INTO datasets (uid, path, sha256, column_name, word_count, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uid, path, sha256, column, len(freqs), now,
	)
	if err != nil {
		return "", fmt.Errorf("insert dataset: %w", err)
	}
	datasetID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(`INSERT INTO dataset_words (dataset_id, word, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for word, weight := range freqs {
		if _, err := stmt.Exec(datasetID, word, weight); err != nil {
			return "", fmt.Errorf("insert word %q: %w", word, err)
		}
	}

	return uid, tx.Commit()
}

// Get returns the cached frequencies for (sha256, column). The second
// return value is false on a cache miss.
func (s *Store) Get(sha256, column string) (map[string]float64, bool, error) {
	var datasetID int64
	var wordCount int
	err := s.db.QueryRow(
		`SELECT id, word_count FROM datasets WHERE sha256 = ? AND column_name = ?`,
		sha256, column,
	).Scan(&datasetID, &wordCount)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := s.db.Query(`SELECT word, weight FROM dataset_words WHERE dataset_id = ?`, datasetID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	freqs := make(map[string]float64, wordCount)
	for rows.Next() {
		var word string
		var weight float64
		if err := rows.Scan(&word, &weight); err != nil {
			return nil, false, err
		}
		freqs[word] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return freqs, true, nil
}

// Datasets lists all cached datasets, most recent first.
func (s *Store) Datasets() ([]Dataset, error) {
	rows, err := s.db.Query(
		`SELECT uid, path, sha256, column_name, word_count, imported_at
		 FROM datasets ORDER BY imported_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.UID, &d.Path, &d.SHA256, &d.Column, &d.WordCount, &d.ImportedAt); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// Dataset describes one cached import.
type Dataset struct {
	UID        string
	Path       string
	SHA256     string
	Column     string
	WordCount  int
	ImportedAt string
}
