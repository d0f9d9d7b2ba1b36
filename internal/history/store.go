// Package history persists a record of completed rename batches in
// SQLite for the `pngseq history` command. The store is reporting-only:
// the CSV ledger remains the undo contract, and nothing here ever drives
// a filesystem change.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gouravbhagat/pngseq/internal/rename"
)

//go:embed schema.sql
var schemaSQL string

// Batch summarizes one completed rename batch.
type Batch struct {
	ID          string
	Directory   string
	FileCount   int
	Basename    string
	StartIndex  int
	ZeroPadding int
	Prefix      string
	Suffix      string
	SortMode    string
	Undone      bool
	CreatedAt   time.Time
}

// FileRecord is one original-to-final mapping within a recorded batch.
type FileRecord struct {
	OriginalPath string
	FinalPath    string
}

// Store manages the SQLite database holding batch history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// DBPath returns the history database location for a renamed directory.
func DBPath(dir string) string {
	return filepath.Join(dir, ".pngseq", "history.db")
}

// NewStore creates a Store and initializes the database at dbPath,
// creating the parent directory if needed. ":memory:" is accepted for
// tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: the store is used sequentially by a single CLI run,
	// and a pooled ":memory:" database would otherwise be one-per-conn.
	db.SetMaxOpenConns(1)

	// busy_timeout first so the remaining pragmas wait on locks instead
	// of failing when another pngseq process touches the same store.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordBatch inserts a batch and its per-file mappings in one
// transaction. A zero-valued ID gets a fresh UUID; the assigned ID is
// returned.
func (s *Store) RecordBatch(b Batch, files []rename.CompletedRename) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO batches
		(id, directory, file_count, basename, start_index, zero_padding, prefix, suffix, sort_mode, undone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		b.ID, b.Directory, b.FileCount, b.Basename, b.StartIndex, b.ZeroPadding,
		b.Prefix, b.Suffix, b.SortMode, b.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert batch: %w", err)
	}

	for _, f := range files {
		_, err = tx.Exec(`INSERT INTO batch_files (batch_id, original_path, final_path) VALUES (?, ?, ?)`,
			b.ID, f.OriginalPath, f.FinalPath)
		if err != nil {
			return "", fmt.Errorf("insert batch file %s: %w", f.OriginalPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit batch: %w", err)
	}
	return b.ID, nil
}

// ListBatches returns the most recent batches, newest first.
// limit <= 0 means no limit.
func (s *Store) ListBatches(limit int) ([]Batch, error) {
	query := `SELECT id, directory, file_count, basename, start_index, zero_padding,
		prefix, suffix, sort_mode, undone, created_at
		FROM batches ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var undone int
		if err := rows.Scan(&b.ID, &b.Directory, &b.FileCount, &b.Basename, &b.StartIndex,
			&b.ZeroPadding, &b.Prefix, &b.Suffix, &b.SortMode, &undone, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.Undone = undone != 0
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}

// BatchFiles returns the per-file mappings of a recorded batch in
// insertion order.
func (s *Store) BatchFiles(batchID string) ([]FileRecord, error) {
	rows, err := s.db.Query(`SELECT original_path, final_path FROM batch_files
		WHERE batch_id = ? ORDER BY id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.OriginalPath, &f.FinalPath); err != nil {
			return nil, fmt.Errorf("scan batch file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch files: %w", err)
	}
	return files, nil
}

// MarkLatestUndone flags the most recent not-yet-undone batch for a
// directory as undone, mirroring the single-batch undo the ledger
// supports. Returns the batch ID, or empty when nothing matched.
func (s *Store) MarkLatestUndone(dir string) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM batches WHERE directory = ? AND undone = 0
		ORDER BY created_at DESC LIMIT 1`, dir).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find latest batch: %w", err)
	}

	if _, err := s.db.Exec(`UPDATE batches SET undone = 1 WHERE id = ?`, id); err != nil {
		return "", fmt.Errorf("mark batch undone: %w", err)
	}
	return id, nil
}
