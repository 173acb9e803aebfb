package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore keeps blobs in a local directory served under publicBaseURL
type FilesystemStore struct {
	basePath      string
	publicBaseURL string
}

// NewFilesystemStore creates the store and its base directory
func NewFilesystemStore(basePath, publicBaseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FilesystemStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Root returns the directory that holds the blobs
func (fs *FilesystemStore) Root() string {
	return fs.basePath
}

func (fs *FilesystemStore) Backend() string { return BackendLocal }

// Upload writes data to basePath/key, failing with ErrKeyExists if the file is already there
func (fs *FilesystemStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	fullPath, err := fs.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return "", fmt.Errorf("%w: %s", ErrKeyExists, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fs.URL(key), nil
}

// Delete removes the file for key
func (fs *FilesystemStore) Delete(ctx context.Context, key string) error {
	fullPath, err := fs.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks if the file for key exists
func (fs *FilesystemStore) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := fs.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

// URL joins the public base URL and the key
func (fs *FilesystemStore) URL(key string) string {
	return fs.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// Ping checks that the base directory is still present
func (fs *FilesystemStore) Ping(ctx context.Context) error {
	info, err := os.Stat(fs.basePath)
	if err != nil {
		return fmt.Errorf("storage directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", fs.basePath)
	}
	return nil
}

func (fs *FilesystemStore) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if key == "" || clean == string(filepath.Separator) {
		return "", ErrInvalidKey
	}
	return filepath.Join(fs.basePath, clean), nil
}
