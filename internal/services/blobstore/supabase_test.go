package blobstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/killallgit/voicenotes-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

type storageRequest struct {
	Method      string
	Path        string
	ContentType string
	APIKey      string
	Body        string
}

// fakeSupabaseStorage serves the subset of the storage REST API the store uses
type fakeSupabaseStorage struct {
	mu       sync.Mutex
	requests []storageRequest
	stored   map[string]bool
}

func (f *fakeSupabaseStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, storageRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		APIKey:      r.Header.Get("apikey"),
		Body:        string(body),
	})

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/storage/v1/object/recordings/"):
		if f.stored[r.URL.Path] && r.Header.Get("x-upsert") != "true" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
			return
		}
		if f.stored == nil {
			f.stored = map[string]bool{}
		}
		f.stored[r.URL.Path] = true
		_, _ = w.Write([]byte(`{"Key":"` + strings.TrimPrefix(r.URL.Path, "/storage/v1/object/") + `"}`))
	case r.Method == http.MethodDelete && r.URL.Path == "/storage/v1/object/recordings":
		_, _ = w.Write([]byte(`[]`))
	case r.Method == http.MethodGet && r.URL.Path == "/storage/v1/bucket/recordings":
		_, _ = w.Write([]byte(`{"id":"recordings","name":"recordings","public":true}`))
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":404,"message":"Bucket not found"}`))
	}
}

func (f *fakeSupabaseStorage) Requests() []storageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storageRequest(nil), f.requests...)
}

func setupSupabase(t *testing.T, bucket string) (*SupabaseStore, *fakeSupabaseStorage, string) {
	t.Helper()
	fake := &fakeSupabaseStorage{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewSupabaseStore(config.SupabaseStorageConfig{URL: srv.URL + "/", Key: "anon-key", Bucket: bucket})
	require.NoError(t, err)
	return store, fake, srv.URL
}

func TestNewSupabaseStore_RequiresURLAndBucket(t *testing.T) {
	_, err := NewSupabaseStore(config.SupabaseStorageConfig{Bucket: "recordings"})
	assert.Error(t, err)
	_, err = NewSupabaseStore(config.SupabaseStorageConfig{URL: "https://x.supabase.co"})
	assert.Error(t, err)
}

func TestSupabaseStore_UploadThenDelete(t *testing.T) {
	ctx := context.Background()
	store, fake, base := setupSupabase(t, "recordings")
	assert.Equal(t, BackendSupabase, store.Backend())

	url, err := store.Upload(ctx, "recordings/1-a.webm", strings.NewReader("audio"), "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, base+"/storage/v1/object/public/recordings/recordings/1-a.webm", url)

	require.NoError(t, store.Delete(ctx, "recordings/1-a.webm"))

	reqs := fake.Requests()
	require.Len(t, reqs, 2)

	upload := reqs[0]
	assert.Equal(t, http.MethodPost, upload.Method)
	assert.Equal(t, "/storage/v1/object/recordings/recordings/1-a.webm", upload.Path)
	assert.Equal(t, "audio/webm", upload.ContentType)
	assert.Equal(t, "anon-key", upload.APIKey)
	assert.Equal(t, "audio", upload.Body)

	del := reqs[1]
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/storage/v1/object/recordings", del.Path)
	assert.Equal(t, "application/json", del.ContentType)

	var payload struct {
		Prefixes []string `json:"prefixes"`
	}
	require.NoError(t, json.Unmarshal([]byte(del.Body), &payload))
	assert.Equal(t, []string{"recordings/1-a.webm"}, payload.Prefixes)
}

func TestSupabaseStore_UploadsDoNotShareHeaders(t *testing.T) {
	ctx := context.Background()
	store, fake, _ := setupSupabase(t, "recordings")

	_, err := store.Upload(ctx, "recordings/1-a.webm", strings.NewReader("a"), "audio/webm")
	require.NoError(t, err)
	_, err = store.Upload(ctx, "recordings/2-b.wav", strings.NewReader("b"), "audio/wav")
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	reqs := fake.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "audio/webm", reqs[0].ContentType)
	assert.Equal(t, "audio/wav", reqs[1].ContentType)
	assert.Equal(t, "application/json", reqs[2].ContentType)
}

func TestSupabaseStore_UploadNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	store, fake, _ := setupSupabase(t, "recordings")

	_, err := store.Upload(ctx, "recordings/1-a.webm", strings.NewReader("first"), "audio/webm")
	require.NoError(t, err)

	_, err = store.Upload(ctx, "recordings/1-a.webm", strings.NewReader("second"), "audio/webm")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyExists)

	reqs := fake.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "audio/webm", reqs[1].ContentType)
}

func TestSupabaseStore_Ping(t *testing.T) {
	ctx := context.Background()

	store, fake, _ := setupSupabase(t, "recordings")
	require.NoError(t, store.Ping(ctx))
	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/storage/v1/bucket/recordings", reqs[0].Path)

	missing, _, _ := setupSupabase(t, "missing")
	err := missing.Ping(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: supabase bucket missing: Bucket not found")

	var storageErr *storage_go.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, 404, storageErr.Status)
}

func TestSupabaseStore_Errors(t *testing.T) {
	ctx := context.Background()
	store, fake, _ := setupSupabase(t, "missing")

	_, err := store.Upload(ctx, "recordings/1-a.webm", strings.NewReader("a"), "audio/webm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: supabase upload")

	err = store.Delete(ctx, "recordings/1-a.webm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: supabase delete")

	_, err = store.Upload(ctx, "", strings.NewReader("a"), "audio/webm")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(ctx, ""), ErrInvalidKey)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Delete(cancelled, "recordings/1-a.webm"), context.Canceled)

	// invalid keys and cancelled contexts never reach the server
	assert.Len(t, fake.Requests(), 2)
}
