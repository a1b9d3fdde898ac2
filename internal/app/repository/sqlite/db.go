package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"docpod/internal/app/repository"
)

//go:embed schema.sql
var schema string

// DB is the SQLite repository
type DB struct {
	*repository.CommonDB
}

// DSN builds the connection string for a database file
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&mode=rwc", path)
}

// Open opens (creating if needed) the database file at path and applies the schema
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := New(conn)
	if err := db.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// New wraps an existing connection
func New(conn *sql.DB) *DB {
	common := repository.NewCommonDB(conn, "sqlite3")
	common.SetUniqueViolation(isUniqueViolation)
	return &DB{CommonDB: common}
}

// Migrate creates missing tables
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.DB().ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
