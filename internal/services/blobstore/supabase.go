package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/killallgit/voicenotes-api/pkg/config"
	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps blobs in a public Supabase Storage bucket
type SupabaseStore struct {
	endpoint string
	key      string
	headers  map[string]string
	// client only ever sends JSON requests; uploads get their own client
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore creates a storage client for the project at cfg.URL
func NewSupabaseStore(cfg config.SupabaseStorageConfig) (*SupabaseStore, error) {
	if cfg.URL == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: supabase url and bucket are required")
	}

	s := &SupabaseStore{
		endpoint: strings.TrimRight(cfg.URL, "/") + "/storage/v1",
		key:      cfg.Key,
		headers:  map[string]string{"apikey": cfg.Key},
		bucket:   cfg.Bucket,
	}
	s.client = s.newClient()
	return s, nil
}

// newClient builds a client with fresh headers. UploadFile sets
// content-type and x-upsert on the client's header map and never resets them.
func (s *SupabaseStore) newClient() *storage_go.Client {
	return storage_go.NewClient(s.endpoint, s.key, s.headers)
}

func (s *SupabaseStore) Backend() string { return BackendSupabase }

// Upload stores the object and returns its public URL
func (s *SupabaseStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := false
	_, err := s.newClient().UploadFile(s.bucket, key, data, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if isDuplicate(err) {
		return "", fmt.Errorf("storage: supabase upload %s: %w", key, ErrKeyExists)
	}
	if err != nil {
		return "", fmt.Errorf("storage: supabase upload: %w", err)
	}
	return s.URL(key), nil
}

// isDuplicate reports a rejected non-upsert upload. The storage API answers
// 400 and carries the 409 only in a string field the client does not decode.
func isDuplicate(err error) bool {
	var storageErr *storage_go.StorageError
	if !errors.As(err, &storageErr) {
		return false
	}
	return storageErr.Status == http.StatusConflict ||
		strings.Contains(strings.ToLower(storageErr.Message), "already exists")
}

// Delete removes the object by exact key
func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("storage: supabase delete: %w", err)
	}
	return nil
}

func (s *SupabaseStore) URL(key string) string {
	return s.client.GetPublicUrl(s.bucket, key).SignedURL
}

// Ping fetches the bucket metadata
func (s *SupabaseStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.GetBucket(s.bucket); err != nil {
		return fmt.Errorf("storage: supabase bucket %s: %w", s.bucket, err)
	}
	return nil
}
