package blobstore

import (
	"context"
	"fmt"

	"github.com/killallgit/voicenotes-api/pkg/config"
)

// New builds the Store selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return NewFilesystemStore(cfg.Local.Path, cfg.Local.PublicBaseURL)
	case BackendS3:
		return NewS3Store(ctx, cfg.S3)
	case BackendSupabase:
		return NewSupabaseStore(cfg.Supabase)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
