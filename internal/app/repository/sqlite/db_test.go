package sqlite

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpod/internal/app/errors"
	"docpod/internal/app/model"
	"docpod/internal/app/repository"
)

var _ repository.Store = (*DB)(nil)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "docpod.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docpod.db")

	first, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer second.Close()
	assert.NoError(t, second.Ping(context.Background()))
}

func TestDB_PodcastLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "ada")

	p := &model.Podcast{UserID: user.ID, OriginalFilename: "report.txt", SourcePath: "uploads/x-report.txt"}
	require.NoError(t, db.CreatePodcast(ctx, p))
	assert.NotZero(t, p.ID)

	got, err := db.GetPodcast(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, got.Status)
	assert.Equal(t, "uploads/x-report.txt", got.SourcePath)
	assert.Nil(t, got.GeneratedAudioPath)

	require.NoError(t, db.MarkCompleted(ctx, p.ID, "generated_audio/report_1.mp3"))

	got, err = db.GetPodcast(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.GeneratedAudioPath)
	assert.Equal(t, "generated_audio/report_1.mp3", *got.GeneratedAudioPath)

	// terminal states never transition again
	err = db.MarkFailed(ctx, p.ID, "too late")
	assert.True(t, stderrors.Is(err, errors.ErrNotProcessing))
	err = db.MarkCompleted(ctx, p.ID, "other.mp3")
	assert.True(t, stderrors.Is(err, errors.ErrNotProcessing))

	require.NoError(t, db.DeletePodcast(ctx, p.ID))
	_, err = db.GetPodcast(ctx, p.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))

	err = db.DeletePodcast(ctx, p.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestDB_FailedJobHasNoAudio(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "bob")

	p := &model.Podcast{UserID: user.ID, OriginalFilename: "slides.docx"}
	require.NoError(t, db.CreatePodcast(ctx, p))
	require.NoError(t, db.MarkFailed(ctx, p.ID, "Could not extract text from the file."))

	got, err := db.GetPodcast(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Nil(t, got.GeneratedAudioPath)
	assert.Equal(t, "Could not extract text from the file.", got.ErrorMessage)
}

func TestDB_Pagination(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "carol")
	other := createUser(t, db, "dave")

	for i := 1; i <= 7; i++ {
		require.NoError(t, db.CreatePodcast(ctx, &model.Podcast{UserID: owner.ID, OriginalFilename: fmt.Sprintf("doc%d.txt", i)}))
		time.Sleep(2 * time.Millisecond)
	}
	require.NoError(t, db.CreatePodcast(ctx, &model.Podcast{UserID: other.ID, OriginalFilename: "theirs.txt"}))

	first, err := db.ListPodcastsByUser(ctx, owner.ID, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, first.Total)
	assert.Equal(t, 2, first.Pages())
	require.Len(t, first.Items, 5)
	assert.Equal(t, "doc7.txt", first.Items[0].OriginalFilename)
	assert.Equal(t, "doc3.txt", first.Items[4].OriginalFilename)

	second, err := db.ListPodcastsByUser(ctx, owner.ID, 2, 5)
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "doc1.txt", second.Items[1].OriginalFilename)

	all, err := db.ListAllPodcastsByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestDB_Users(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "erin")

	dup := &model.User{Username: "erin2", Email: "ERIN@example.com", PasswordHash: "x"}
	err := db.CreateUser(ctx, dup)
	assert.True(t, stderrors.Is(err, errors.ErrAlreadyExists), "got %v", err)

	byEmail, err := db.GetUserByEmail(ctx, "Erin@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "erin", byID.Username)

	_, err = db.GetUserByID(ctx, 404)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, db.CreateSession(ctx, &model.Session{TokenHash: "h1", UserID: user.ID, ExpiresAt: expires}))

	s, err := db.GetSession(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, s.UserID)
	assert.True(t, s.ExpiresAt.Equal(expires))

	require.NoError(t, db.DeleteSession(ctx, "h1"))
	_, err = db.GetSession(ctx, "h1")
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}
