package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DOCPOD_DB_DRIVER", "sqlite")
	t.Setenv("DOCPOD_DB_DSN", filepath.Join(dir, "docpod.db"))
	t.Setenv("DOCPOD_UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("DOCPOD_GENERATED_DIR", filepath.Join(dir, "generated"))
	t.Setenv("DOCPOD_STORAGE", "local")
	t.Setenv("DOCPOD_QUEUE", "memory")

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Script.APIKey = "test-key"
	cfg.TTS.APIKey = "test-key"
	return cfg
}

func TestInitializeApplication(t *testing.T) {
	cfg := testConfig(t)

	application, cleanup, err := InitializeApplication(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, application.Store)
	assert.NotNil(t, application.Queue)
	assert.NotNil(t, application.Pool)

	rec := httptest.NewRecorder()
	application.Server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	application.Server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docpod_pipeline_jobs_in_flight")
}

func TestInitializeApplication_MissingScriptKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Script.APIKey = ""

	_, _, err := InitializeApplication(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, errors.ErrMissingAPIKey)
}

func TestInitializeGenerator(t *testing.T) {
	cfg := testConfig(t)

	gen, cleanup, err := InitializeGenerator(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, gen.Pipeline)
	assert.NotNil(t, gen.Synthesizer)
	require.NoError(t, gen.Store.Ping(context.Background()))
}

func TestInitializeStore_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, _, err := InitializeStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
