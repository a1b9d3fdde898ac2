package storage

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docpod/internal/app/errors"
)

// fakeS3 is a tiny path-style object server covering the calls the store makes
type fakeS3 struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.contentTypes[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		data, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>`+key+`</Key></Error>`)
			}
			return
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", f.contentTypes[key])
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestMinioStore(t *testing.T) (*MinioStore, *fakeS3) {
	t.Helper()
	backend := &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)

	return NewMinioStoreWithClient(client, "docpod-podcasts", t.TempDir(), zap.NewNop()), backend
}

func TestMinioStore_Lifecycle(t *testing.T) {
	store, backend := newTestMinioStore(t)
	ctx := context.Background()

	staged, err := store.StagingPath("report_1.mp3")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(staged, []byte("mp3-data"), 0644))

	location, err := store.Commit(ctx, "report_1.mp3", staged)
	require.NoError(t, err)
	assert.Equal(t, "podcasts/report_1.mp3", location)
	assert.NoFileExists(t, staged)

	backend.mu.Lock()
	assert.Contains(t, backend.objects, "docpod-podcasts/podcasts/report_1.mp3")
	assert.Equal(t, "audio/mpeg", backend.contentTypes["docpod-podcasts/podcasts/report_1.mp3"])
	backend.mu.Unlock()

	rc, size, err := store.Open(ctx, location)
	require.NoError(t, err)
	defer rc.Close()
	assert.Positive(t, size)

	require.NoError(t, store.Remove(ctx, location))
	backend.mu.Lock()
	assert.NotContains(t, backend.objects, "docpod-podcasts/podcasts/report_1.mp3")
	backend.mu.Unlock()
}

func TestMinioStore_OpenMissing(t *testing.T) {
	store, _ := newTestMinioStore(t)

	_, _, err := store.Open(context.Background(), "podcasts/missing.mp3")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrArtifactMissing))
}

func TestMinioStore_CommitMissingStagedFile(t *testing.T) {
	store, _ := newTestMinioStore(t)

	_, err := store.Commit(context.Background(), "x.mp3", filepath.Join(t.TempDir(), "x.mp3"))
	assert.True(t, stderrors.Is(err, errors.ErrArtifactMissing))
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "podcasts/notes_7.mp3", ObjectKey("notes_7.mp3"))
}
