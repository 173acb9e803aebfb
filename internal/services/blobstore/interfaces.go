// Package blobstore stores uploaded audio in a local directory, an S3
// compatible bucket or Supabase Storage behind one Store interface.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// Backend names accepted by New
const (
	BackendLocal    = "local"
	BackendS3       = "s3"
	BackendSupabase = "supabase"
)

var (
	// ErrInvalidKey is returned for keys that are empty or escape the store root
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrKeyExists is returned by Upload when an object already holds the key
	ErrKeyExists = errors.New("storage key already exists")
)

// Store persists audio blobs under caller-chosen keys
type Store interface {
	// Upload writes the object and returns its public URL. It never
	// replaces an existing object.
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Delete removes the object; deleting a missing object is not an error
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key
	URL(key string) string

	// Ping verifies the backend is reachable
	Ping(ctx context.Context) error

	// Backend names the implementation
	Backend() string
}
