package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Store persisted in a single SQLite file.
type SQLite struct {
	db *sqlx.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path and applies schema
// migrations.
func OpenSQLite(path string) (*SQLite, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Immediate transactions take the write lock up front so a
	// read-then-write in Put cannot be interleaved by another connection.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close closes the DB.
func (s *SQLite) Close() error { return s.db.Close() }

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sqlx.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.Get(&current, `SELECT value FROM meta WHERE key='schema_version';`)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
            key TEXT PRIMARY KEY,
            value BLOB NOT NULL,
            checksum TEXT NOT NULL,
            version INTEGER NOT NULL,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Key-value operations
// ---------------------------------------------------------------------------

type kvRow struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	Checksum  string    `db:"checksum"`
	Version   int64     `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *SQLite) Get(ctx context.Context, key string) (Record, error) {
	var row kvRow
	err := s.db.GetContext(ctx, &row, `SELECT key,value,checksum,version FROM kv WHERE key=?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", key, err)
	}
	if checksum(row.Value) != row.Checksum {
		return Record{}, fmt.Errorf("get %s: %w", key, ErrCorrupt)
	}
	return Record{Value: row.Value, Version: row.Version}, nil
}

// Put checks the expected version and writes the value in one transaction.
func (s *SQLite) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int64
	err = tx.GetContext(ctx, &current, `SELECT version FROM kv WHERE key=?`, key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("put %s: %w", key, err)
	}
	if !versionMatches(current, expected) {
		return 0, fmt.Errorf("put %s: have version %d, want %d: %w", key, current, expected, ErrConflict)
	}

	row := kvRow{
		Key:       key,
		Value:     value,
		Checksum:  checksum(value),
		Version:   current + 1,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := tx.NamedExecContext(ctx, `
        INSERT INTO kv (key, value, checksum, version, updated_at)
        VALUES (:key, :value, :checksum, :version, :updated_at)
        ON CONFLICT(key) DO UPDATE SET
            value      = excluded.value,
            checksum   = excluded.checksum,
            version    = excluded.version,
            updated_at = excluded.updated_at
    `, row); err != nil {
		return 0, fmt.Errorf("put %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return row.Version, nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key=?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys returns every persisted key in sorted order.
func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, `SELECT key FROM kv ORDER BY key`); err != nil {
		return nil, err
	}
	return keys, nil
}
