package cmd

import (
	"context"
	"fmt"

	"github.com/killallgit/voicenotes-api/api/types"
	"github.com/killallgit/voicenotes-api/internal/database"
	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/internal/services/blobstore"
	"github.com/killallgit/voicenotes-api/internal/services/cleanup"
	"github.com/killallgit/voicenotes-api/internal/services/notes"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	"github.com/killallgit/voicenotes-api/internal/services/recordings"
	"github.com/killallgit/voicenotes-api/internal/services/sessions"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
	"github.com/killallgit/voicenotes-api/pkg/config"
)

// app is the dependency graph behind the serve command
type app struct {
	db      *database.DB
	deps    *types.Dependencies
	janitor *cleanup.Service
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, error) {
	return database.Open(ctx, database.Options{
		Driver:          cfg.Driver,
		Path:            cfg.Path,
		DSN:             cfg.DSN,
		Verbose:         cfg.Verbose,
		MaxOpenConns:    cfg.MaxOpenConnections,
		MaxIdleConns:    cfg.MaxIdleConnections,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnectRetries:  cfg.ConnectRetries,
	})
}

func registryConfig(cfg config.ProvidersConfig) providers.RegistryConfig {
	return providers.RegistryConfig{
		Gemini: providers.GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
		},
		OpenAI: providers.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.APIURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		},
		Deepgram: providers.DeepgramConfig{
			APIKey:  cfg.Deepgram.APIKey,
			BaseURL: cfg.Deepgram.APIURL,
			Model:   cfg.Deepgram.Model,
			Timeout: cfg.Deepgram.Timeout,
		},
	}
}

// buildApp opens the database, migrates it and wires every service
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		_ = db.Close()
		return nil, err
	}

	registry, generator, err := providers.BuildRegistry(ctx, registryConfig(cfg.Providers))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("building provider registry: %w", err)
	}
	llm := notes.NewGeminiGenerator(generator, cfg.Providers.Gemini.LLMModel)

	store, err := blobstore.New(ctx, cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening blob store: %w", err)
	}

	orphans := cleanup.NewRepository(db.DB)

	deps := &types.Dependencies{
		DB:            db,
		Registry:      registry,
		Transcriber:   transcription.NewService(registry, notes.NewPolisher(llm), notes.NewTopicDetector(llm), cfg.Upload.MaxSize),
		Recordings:    recordings.NewService(recordings.NewRepository(db.DB), store, orphans),
		Sessions:      sessions.NewService(sessions.NewRepository(db.DB), registry, cfg.Upload.MaxSize),
		Storage:       store,
		MaxUploadSize: cfg.Upload.MaxSize,
	}
	if fs, ok := store.(*blobstore.FilesystemStore); ok {
		deps.MediaRoot = fs.Root()
	}

	a := &app{db: db, deps: deps}
	if cfg.Cleanup.Enabled {
		a.janitor = cleanup.NewService(orphans, store, cleanup.Options{
			Interval:    cfg.Cleanup.Interval,
			MaxAttempts: cfg.Cleanup.MaxAttempts,
			BatchSize:   cfg.Cleanup.BatchSize,
		})
	}
	return a, nil
}

// Close stops the janitor and releases the database
func (a *app) Close() error {
	if a.janitor != nil {
		a.janitor.Stop()
	}
	return a.db.Close()
}

func kindNames(deps *types.Dependencies) []string {
	kinds := deps.Registry.Configured()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
