package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Result counts the rows copied per table
type Result struct {
	Users    int
	Podcasts int
}

// SQLiteToPostgres copies users and podcasts from a SQLite database into a
// PostgreSQL database with the same schema. Row ids are preserved and rows
// already present in the target are skipped, so the copy can be re-run.
func SQLiteToPostgres(ctx context.Context, src, dst *sql.DB, logger *zap.Logger) (*Result, error) {
	tx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result := &Result{}

	result.Users, err = copyUsers(ctx, src, tx)
	if err != nil {
		return nil, err
	}
	result.Podcasts, err = copyPodcasts(ctx, src, tx)
	if err != nil {
		return nil, err
	}

	for _, table := range []string{"users", "podcasts"} {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))`, table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return nil, fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit migration: %w", err)
	}

	logger.Info("data migration completed", zap.Int("users", result.Users), zap.Int("podcasts", result.Podcasts))
	return result, nil
}

func copyUsers(ctx context.Context, src *sql.DB, tx *sql.Tx) (int, error) {
	rows, err := src.QueryContext(ctx, `SELECT id, username, email, password_hash, created_at FROM users ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("failed to read users: %w", err)
	}
	defer rows.Close()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare user insert: %w", err)
	}
	defer stmt.Close()

	copied := 0
	for rows.Next() {
		var id int64
		var username, email, hash, created sqlValue
		if err := rows.Scan(&id, &username, &email, &hash, &created); err != nil {
			return copied, fmt.Errorf("failed to read user row: %w", err)
		}
		res, err := stmt.ExecContext(ctx, id, username.v, email.v, hash.v, created.v)
		if err != nil {
			return copied, fmt.Errorf("failed to insert user %d: %w", id, err)
		}
		copied += affected(res)
	}
	return copied, rows.Err()
}

func copyPodcasts(ctx context.Context, src *sql.DB, tx *sql.Tx) (int, error) {
	rows, err := src.QueryContext(ctx, `SELECT id, user_id, original_filename, source_path, status,
		generated_audio_path, error_message, created_at, updated_at FROM podcasts ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("failed to read podcasts: %w", err)
	}
	defer rows.Close()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO podcasts (id, user_id, original_filename, source_path, status,
		generated_audio_path, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare podcast insert: %w", err)
	}
	defer stmt.Close()

	copied := 0
	for rows.Next() {
		var id, userID int64
		var filename, source, status, audio, msg, c, u sqlValue
		if err := rows.Scan(&id, &userID, &filename, &source, &status, &audio, &msg, &c, &u); err != nil {
			return copied, fmt.Errorf("failed to read podcast row: %w", err)
		}
		res, err := stmt.ExecContext(ctx, id, userID, filename.v, source.v, status.v, audio.v, msg.v, c.v, u.v)
		if err != nil {
			return copied, fmt.Errorf("failed to insert podcast %d: %w", id, err)
		}
		copied += affected(res)
	}
	return copied, rows.Err()
}

// sqlValue passes a column through unchanged, NULL included
type sqlValue struct {
	v interface{}
}

func (s *sqlValue) Scan(src interface{}) error {
	if b, ok := src.([]byte); ok {
		src = string(b)
	}
	s.v = src
	return nil
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
