package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"docpod/internal/app/model"
	"docpod/internal/app/repository"
	"docpod/internal/app/repository/pg"
	"docpod/internal/app/repository/sqlite"
)

// SetupTestStore opens a migrated repository for one test. It uses the
// PostgreSQL database in POSTGRES_TEST_URL when set and a temporary SQLite
// file otherwise. The store is closed on cleanup.
func SetupTestStore(t *testing.T) repository.Store {
	t.Helper()
	ctx := context.Background()

	var store repository.Store
	if pgURL := os.Getenv("POSTGRES_TEST_URL"); pgURL != "" {
		db, err := pg.NewPostgresDB(ctx, pgURL)
		require.NoError(t, err, "failed to connect to PostgreSQL test database")
		_, err = db.DB().ExecContext(ctx, `TRUNCATE podcasts, sessions, users RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
		store = db
	} else {
		db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err, "failed to open SQLite test database")
		store = db
	}

	t.Cleanup(func() { store.Close() })
	return store
}

// CreateTestUser inserts a user named name with an unusable password
func CreateTestUser(t *testing.T, users repository.UserDAO, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "!"}
	require.NoError(t, users.CreateUser(context.Background(), u))
	return u
}

// CreateTestPodcast inserts a processing job for userID
func CreateTestPodcast(t *testing.T, podcasts repository.PodcastDAO, userID int64, filename string) *model.Podcast {
	t.Helper()
	p := &model.Podcast{UserID: userID, OriginalFilename: filename, SourcePath: filepath.Join(t.TempDir(), filename)}
	require.NoError(t, podcasts.CreatePodcast(context.Background(), p))
	return p
}
