package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "serve command with help",
			args:           []string{"serve", "--help"},
			wantErr:        false,
			expectedOutput: "Start the Voice Notes API server",
		},
		{
			name:           "serve command with invalid port",
			args:           []string{"serve", "--port", "invalid"},
			wantErr:        true,
			expectedOutput: "",
		},
		{
			name:           "serve command with out of range port",
			args:           []string{"serve", "--port", "70000"},
			wantErr:        true,
			expectedOutput: "invalid port 70000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(buf.String(), tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, buf.String())
			}
		})
	}
	serverPort = 0
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("Failed to find serve command: %v", err)
	}

	// Test port flag
	portFlag := serveCmd.Flags().Lookup("port")
	if portFlag == nil {
		t.Error("Expected port flag to be registered")
	}

	// Test host flag
	hostFlag := serveCmd.Flags().Lookup("host")
	if hostFlag == nil {
		t.Error("Expected host flag to be registered")
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(dir, "voicenotes.db"),
		},
		Upload: config.UploadConfig{MaxSize: 1 << 20},
		Storage: config.StorageConfig{
			Backend: "local",
			Local: config.LocalStorageConfig{
				Path:          filepath.Join(dir, "blobs"),
				PublicBaseURL: "http://localhost:8080/media",
			},
		},
		Cleanup: config.CleanupConfig{Enabled: true},
	}
}

func TestBuildApp(t *testing.T) {
	cfg := testConfig(t)

	a, err := buildApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.deps)
	assert.NotNil(t, a.deps.Transcriber)
	assert.NotNil(t, a.deps.Recordings)
	assert.NotNil(t, a.deps.Sessions)
	assert.Equal(t, "local", a.deps.Storage.Backend())
	assert.Equal(t, filepath.Join(filepath.Dir(cfg.Database.Path), "blobs"), a.deps.MediaRoot)
	assert.Equal(t, int64(1<<20), a.deps.UploadLimit())
	assert.Empty(t, kindNames(a.deps))
	assert.NotNil(t, a.janitor)

	status, err := a.db.TableStatus(models.All()...)
	require.NoError(t, err)
	for table, exists := range status {
		assert.True(t, exists, table)
	}
	require.NoError(t, a.db.HealthCheck())
}

func TestBuildApp_ConfiguredProviders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cleanup.Enabled = false
	cfg.Providers.OpenAI.APIKey = "sk-test"
	cfg.Providers.Deepgram.APIKey = "dg-test"

	a, err := buildApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"deepgram_nova", "openai_whisper"}, kindNames(a.deps))
	assert.Nil(t, a.janitor)
}

func TestBuildApp_UnknownStorageBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "ftp"

	_, err := buildApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening blob store")
}
