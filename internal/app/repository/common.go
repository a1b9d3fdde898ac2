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

// CommonDB implements Store with SQL shared by the sqlite and postgres backends
type CommonDB struct {
	db                *sql.DB
	driverName        string
	placeholders      PlaceholderFunc
	isUniqueViolation func(error) bool
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:                db,
		driverName:        driverName,
		placeholders:      placeholders,
		isUniqueViolation: func(error) bool { return false },
	}
}

// SetUniqueViolation installs the driver-specific unique constraint check
func (c *CommonDB) SetUniqueViolation(fn func(error) bool) {
	c.isUniqueViolation = fn
}

// bind rewrites each "?" in query to the dialect placeholder
func (c *CommonDB) bind(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(c.placeholders(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

const podcastColumns = `id, user_id, original_filename, source_path, status,
		generated_audio_path, error_message, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPodcast(row rowScanner) (*model.Podcast, error) {
	var (
		p         model.Podcast
		audioPath sql.NullString
		errMsg    sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.OriginalFilename,
		&p.SourcePath,
		&p.Status,
		&audioPath,
		&errMsg,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if audioPath.Valid {
		path := audioPath.String
		p.GeneratedAudioPath = &path
	}
	p.ErrorMessage = errMsg.String
	return &p, nil
}

// CreatePodcast inserts a new processing job
func (c *CommonDB) CreatePodcast(ctx context.Context, p *model.Podcast) error {
	now := time.Now().UTC()
	p.Status = model.StatusProcessing
	p.GeneratedAudioPath = nil
	p.ErrorMessage = ""
	p.CreatedAt = now
	p.UpdatedAt = now

	query := c.bind(`INSERT INTO podcasts (
			user_id, original_filename, source_path, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)

	err := c.db.QueryRowContext(ctx, query,
		p.UserID, p.OriginalFilename, p.SourcePath, string(p.Status), now, now,
	).Scan(&p.ID)
	if err != nil {
		return errors.Wrap(errors.ErrInsertFailed, err.Error())
	}
	return nil
}

// GetPodcast loads one job
func (c *CommonDB) GetPodcast(ctx context.Context, id int64) (*model.Podcast, error) {
	query := c.bind(`SELECT ` + podcastColumns + ` FROM podcasts WHERE id = ?`)

	p, err := scanPodcast(c.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("podcast", fmt.Sprint(id))
		}
		return nil, errors.Wrap(errors.ErrQueryFailed, err.Error())
	}
	return p, nil
}

// ListPodcastsByUser returns one page of a user's jobs, newest first
func (c *CommonDB) ListPodcastsByUser(ctx context.Context, userID int64, page, perPage int) (*model.PodcastPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		return nil, errors.InvalidField("per_page", "must be positive")
	}

	var total int
	err := c.db.QueryRowContext(ctx, c.bind(`SELECT COUNT(*) FROM podcasts WHERE user_id = ?`), userID).Scan(&total)
	if err != nil {
		return nil, errors.Wrap(errors.ErrQueryFailed, err.Error())
	}

	query := c.bind(`SELECT ` + podcastColumns + ` FROM podcasts
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`)

	items, err := c.queryPodcasts(ctx, query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	return &model.PodcastPage{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}, nil
}

// ListAllPodcastsByUser returns every job of a user, newest first
func (c *CommonDB) ListAllPodcastsByUser(ctx context.Context, userID int64) ([]model.Podcast, error) {
	query := c.bind(`SELECT ` + podcastColumns + ` FROM podcasts
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`)
	return c.queryPodcasts(ctx, query, userID)
}

func (c *CommonDB) queryPodcasts(ctx context.Context, query string, args ...interface{}) ([]model.Podcast, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrQueryFailed, err.Error())
	}
	defer rows.Close()

	podcasts := []model.Podcast{}
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		podcasts = append(podcasts, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return podcasts, nil
}

// MarkCompleted records the artifact location of a processing job
func (c *CommonDB) MarkCompleted(ctx context.Context, id int64, audioPath string) error {
	query := c.bind(`UPDATE podcasts
		 SET status = ?, generated_audio_path = ?, error_message = '', updated_at = ?
		 WHERE id = ? AND status = ?`)
	return c.transition(ctx, id, query,
		string(model.StatusCompleted), audioPath, time.Now().UTC(), id, string(model.StatusProcessing))
}

// MarkFailed records why a processing job failed
func (c *CommonDB) MarkFailed(ctx context.Context, id int64, message string) error {
	query := c.bind(`UPDATE podcasts
		 SET status = ?, generated_audio_path = NULL, error_message = ?, updated_at = ?
		 WHERE id = ? AND status = ?`)
	return c.transition(ctx, id, query,
		string(model.StatusFailed), message, time.Now().UTC(), id, string(model.StatusProcessing))
}

func (c *CommonDB) transition(ctx context.Context, id int64, query string, args ...interface{}) error {
	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(errors.ErrUpdateFailed, err.Error())
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrUpdateFailed, err.Error())
	}
	if affected == 0 {
		return errors.Wrapf(errors.ErrNotProcessing, "podcast %d", id)
	}
	return nil
}

// DeletePodcast removes the row in a transaction. Nothing is changed on error.
func (c *CommonDB) DeletePodcast(ctx context.Context, id int64) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrDeleteFailed, err.Error())
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, c.bind(`DELETE FROM podcasts WHERE id = ?`), id)
	if err != nil {
		return errors.Wrap(errors.ErrDeleteFailed, err.Error())
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrDeleteFailed, err.Error())
	}
	if affected == 0 {
		return errors.NotFound("podcast", fmt.Sprint(id))
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDeleteFailed, err.Error())
	}
	return nil
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping checks the connection
func (c *CommonDB) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying database connection
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

// DriverName returns the SQL driver name
func (c *CommonDB) DriverName() string {
	return c.driverName
}
