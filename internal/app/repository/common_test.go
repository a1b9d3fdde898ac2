package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpod/internal/app/errors"
	"docpod/internal/app/model"
)

var podcastRowColumns = []string{
	"id", "user_id", "original_filename", "source_path", "status",
	"generated_audio_path", "error_message", "created_at", "updated_at",
}

func newMockDB(t *testing.T, driver string) (*CommonDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCommonDB(db, driver), mock
}

func TestCommonDB_Bind(t *testing.T) {
	sqliteDB := NewCommonDB(nil, "sqlite3")
	pgDB := NewCommonDB(nil, "postgres")

	query := "UPDATE podcasts SET status = ? WHERE id = ? AND status = ?"
	assert.Equal(t, query, sqliteDB.bind(query))
	assert.Equal(t, "UPDATE podcasts SET status = $1 WHERE id = $2 AND status = $3", pgDB.bind(query))
}

func TestCommonDB_CreatePodcast(t *testing.T) {
	for _, driver := range []string{"sqlite3", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			c, mock := newMockDB(t, driver)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO podcasts")).
				WithArgs(int64(3), "report.txt", "uploads/abc-report.txt", "processing", sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

			p := &model.Podcast{UserID: 3, OriginalFilename: "report.txt", SourcePath: "uploads/abc-report.txt"}
			require.NoError(t, c.CreatePodcast(context.Background(), p))

			assert.Equal(t, int64(11), p.ID)
			assert.Equal(t, model.StatusProcessing, p.Status)
			assert.Nil(t, p.GeneratedAudioPath)
			assert.False(t, p.CreatedAt.IsZero())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommonDB_CreatePodcast_Error(t *testing.T) {
	c, mock := newMockDB(t, "sqlite3")
	mock.ExpectQuery("INSERT INTO podcasts").WillReturnError(sql.ErrConnDone)

	err := c.CreatePodcast(context.Background(), &model.Podcast{UserID: 1, OriginalFilename: "a.txt"})
	assert.True(t, stderrors.Is(err, errors.ErrInsertFailed))
}

func TestCommonDB_GetPodcast(t *testing.T) {
	now := time.Now().UTC()

	t.Run("completed job", func(t *testing.T) {
		c, mock := newMockDB(t, "postgres")
		mock.ExpectQuery(regexp.QuoteMeta("FROM podcasts WHERE id = $1")).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(podcastRowColumns).
				AddRow(5, 3, "notes.pdf", "uploads/x-notes.pdf", "completed", "generated_audio/notes_5.mp3", "", now, now))

		p, err := c.GetPodcast(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, p.Status)
		require.NotNil(t, p.GeneratedAudioPath)
		assert.Equal(t, "generated_audio/notes_5.mp3", *p.GeneratedAudioPath)
		assert.True(t, p.HasAudio())
	})

	t.Run("failed job has no path", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectQuery("FROM podcasts WHERE id").
			WillReturnRows(sqlmock.NewRows(podcastRowColumns).
				AddRow(6, 3, "bad.txt", "", "failed", nil, "Could not extract text from the file.", now, now))

		p, err := c.GetPodcast(context.Background(), 6)
		require.NoError(t, err)
		assert.Nil(t, p.GeneratedAudioPath)
		assert.Equal(t, "Could not extract text from the file.", p.ErrorMessage)
	})

	t.Run("not found", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectQuery("FROM podcasts WHERE id").WillReturnError(sql.ErrNoRows)

		_, err := c.GetPodcast(context.Background(), 99)
		assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	})
}

func TestCommonDB_ListPodcastsByUser(t *testing.T) {
	c, mock := newMockDB(t, "sqlite3")
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM podcasts WHERE user_id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(3), 5, 5).
		WillReturnRows(sqlmock.NewRows(podcastRowColumns).
			AddRow(2, 3, "b.txt", "", "processing", nil, "", now.Add(-time.Minute), now).
			AddRow(1, 3, "a.txt", "", "completed", "a_1.mp3", "", now.Add(-2*time.Minute), now))

	page, err := c.ListPodcastsByUser(context.Background(), 3, 2, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 2, page.Pages())
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_ListPodcastsByUser_ClampsPage(t *testing.T) {
	c, mock := newMockDB(t, "sqlite3")

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("ORDER BY").WithArgs(int64(3), 5, 0).WillReturnRows(sqlmock.NewRows(podcastRowColumns))

	page, err := c.ListPodcastsByUser(context.Background(), 3, -4, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestCommonDB_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		run      func(c *CommonDB) error
		wantErr  error
	}{
		{
			name:     "complete processing job",
			affected: 1,
			run: func(c *CommonDB) error {
				return c.MarkCompleted(context.Background(), 4, "generated_audio/report_4.mp3")
			},
		},
		{
			name:     "fail processing job",
			affected: 1,
			run: func(c *CommonDB) error {
				return c.MarkFailed(context.Background(), 4, "Audio generation failed.")
			},
		},
		{
			name:     "terminal job cannot complete",
			affected: 0,
			run: func(c *CommonDB) error {
				return c.MarkCompleted(context.Background(), 4, "x.mp3")
			},
			wantErr: errors.ErrNotProcessing,
		},
		{
			name:     "terminal job cannot fail",
			affected: 0,
			run: func(c *CommonDB) error {
				return c.MarkFailed(context.Background(), 4, "late failure")
			},
			wantErr: errors.ErrNotProcessing,
		},
		{
			name:    "database error",
			execErr: sql.ErrConnDone,
			run: func(c *CommonDB) error {
				return c.MarkFailed(context.Background(), 4, "x")
			},
			wantErr: errors.ErrUpdateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mock := newMockDB(t, "sqlite3")
			exp := mock.ExpectExec(regexp.QuoteMeta("WHERE id = ? AND status = ?"))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := tt.run(c)
			if tt.wantErr != nil {
				assert.True(t, stderrors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommonDB_DeletePodcast(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		c, mock := newMockDB(t, "postgres")
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM podcasts WHERE id = $1")).
			WithArgs(int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, c.DeletePodcast(context.Background(), 8))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row rolls back", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM podcasts").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := c.DeletePodcast(context.Background(), 8)
		assert.True(t, stderrors.Is(err, errors.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error rolls back", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM podcasts").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := c.DeletePodcast(context.Background(), 8)
		assert.True(t, stderrors.Is(err, errors.ErrDeleteFailed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit error", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM podcasts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

		err := c.DeletePodcast(context.Background(), 8)
		assert.True(t, stderrors.Is(err, errors.ErrDeleteFailed))
	})
}

func TestCommonDB_Users(t *testing.T) {
	t.Run("create user normalises email", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("ada", "ada@example.com", "hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		u := &model.User{Username: "ada", Email: " Ada@Example.com ", PasswordHash: "hash"}
		require.NoError(t, c.CreateUser(context.Background(), u))
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "ada@example.com", u.Email)
	})

	t.Run("duplicate user", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		dup := stderrors.New("UNIQUE constraint failed: users.email")
		c.SetUniqueViolation(func(err error) bool { return err == dup })
		mock.ExpectQuery("INSERT INTO users").WillReturnError(dup)

		err := c.CreateUser(context.Background(), &model.User{Username: "ada", Email: "ada@example.com"})
		assert.True(t, stderrors.Is(err, errors.ErrAlreadyExists))
	})

	t.Run("unknown email", func(t *testing.T) {
		c, mock := newMockDB(t, "sqlite3")
		mock.ExpectQuery("FROM users WHERE email").WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)

		_, err := c.GetUserByEmail(context.Background(), "Nobody@example.com")
		assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	})

	t.Run("session round trip", func(t *testing.T) {
		c, mock := newMockDB(t, "postgres")
		expires := time.Now().Add(time.Hour).UTC()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions (token_hash, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)")).
			WithArgs("abc", int64(1), expires, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE token_hash = $1")).
			WithArgs("abc").
			WillReturnRows(sqlmock.NewRows([]string{"token_hash", "user_id", "expires_at", "created_at"}).
				AddRow("abc", 1, expires, time.Now()))
		mock.ExpectExec("DELETE FROM sessions").WithArgs("abc").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, c.CreateSession(context.Background(), &model.Session{TokenHash: "abc", UserID: 1, ExpiresAt: expires}))
		s, err := c.GetSession(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, int64(1), s.UserID)
		require.NoError(t, c.DeleteSession(context.Background(), "abc"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
