package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"docpod/internal/app/errors"
	"docpod/internal/app/model"
)

// CreateUser inserts u. A duplicate username or email yields ErrAlreadyExists.
func (c *CommonDB) CreateUser(ctx context.Context, u *model.User) error {
	u.CreatedAt = time.Now().UTC()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query := c.bind(`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?) RETURNING id`)

	err := c.db.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if c.isUniqueViolation(err) {
			return errors.Wrapf(errors.ErrAlreadyExists, "user %s", u.Email)
		}
		return errors.Wrap(errors.ErrInsertFailed, err.Error())
	}
	return nil
}

// GetUserByEmail looks a user up by normalised email
func (c *CommonDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := c.bind(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`)
	return c.getUser(ctx, query, "email "+email, strings.ToLower(strings.TrimSpace(email)))
}

// GetUserByID looks a user up by id
func (c *CommonDB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := c.bind(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`)
	return c.getUser(ctx, query, fmt.Sprintf("id %d", id), id)
}

func (c *CommonDB) getUser(ctx context.Context, query, what string, arg interface{}) (*model.User, error) {
	var u model.User
	err := c.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user", what)
		}
		return nil, errors.Wrap(errors.ErrQueryFailed, err.Error())
	}
	return &u, nil
}

// CreateSession stores a hashed bearer token
func (c *CommonDB) CreateSession(ctx context.Context, s *model.Session) error {
	s.CreatedAt = time.Now().UTC()
	query := c.bind(`INSERT INTO sessions (token_hash, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`)

	if _, err := c.db.ExecContext(ctx, query, s.TokenHash, s.UserID, s.ExpiresAt.UTC(), s.CreatedAt); err != nil {
		return errors.Wrap(errors.ErrInsertFailed, err.Error())
	}
	return nil
}

// GetSession loads a session by token hash
func (c *CommonDB) GetSession(ctx context.Context, tokenHash string) (*model.Session, error) {
	query := c.bind(`SELECT token_hash, user_id, expires_at, created_at FROM sessions WHERE token_hash = ?`)

	var s model.Session
	err := c.db.QueryRowContext(ctx, query, tokenHash).Scan(&s.TokenHash, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("session", "token")
		}
		return nil, errors.Wrap(errors.ErrQueryFailed, err.Error())
	}
	return &s, nil
}

// DeleteSession removes a session. Deleting an unknown token is not an error.
func (c *CommonDB) DeleteSession(ctx context.Context, tokenHash string) error {
	if _, err := c.db.ExecContext(ctx, c.bind(`DELETE FROM sessions WHERE token_hash = ?`), tokenHash); err != nil {
		return errors.Wrap(errors.ErrDeleteFailed, err.Error())
	}
	return nil
}
