package pg

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"

	"docpod/internal/app/repository"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// PostgresDB is the PostgreSQL repository
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB opens a connection pool and applies the schema
func NewPostgresDB(ctx context.Context, connectionString string) (*PostgresDB, error) {
	conn, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := New(conn)
	if err := db.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// New wraps an existing connection
func New(conn *sql.DB) *PostgresDB {
	common := repository.NewCommonDB(conn, "postgres")
	common.SetUniqueViolation(isUniqueViolation)
	return &PostgresDB{CommonDB: common}
}

// Migrate creates missing tables
func (p *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := p.DB().ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
