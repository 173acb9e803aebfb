package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string          `mapstructure:"environment" validate:"required"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Upload      UploadConfig    `mapstructure:"upload"`
	Providers   ProvidersConfig `mapstructure:"providers"`
	Storage     StorageConfig   `mapstructure:"storage"`
	Cleanup     CleanupConfig   `mapstructure:"cleanup"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig selects and configures the relational store
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	Path               string        `mapstructure:"path"`
	DSN                string        `mapstructure:"dsn"`
	Verbose            bool          `mapstructure:"verbose"`
	MaxOpenConnections int           `mapstructure:"max_open_connections"`
	MaxIdleConnections int           `mapstructure:"max_idle_connections"`
	ConnMaxLifetime    time.Duration `mapstructure:"connection_max_lifetime"`
	ConnectRetries     int           `mapstructure:"connect_retries"`
}

// LoggingConfig contains zerolog settings
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// UploadConfig bounds accepted audio uploads
type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size" validate:"gt=0"`
}

// ProvidersConfig holds credentials and endpoints for the external AI services
type ProvidersConfig struct {
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Deepgram DeepgramConfig `mapstructure:"deepgram"`
}

// GeminiConfig configures the Gemini transcription provider and note LLM
type GeminiConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	LLMModel string `mapstructure:"llm_model"`
	BaseURL  string `mapstructure:"base_url"`
}

// OpenAIConfig configures the Whisper transcription provider
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DeepgramConfig configures the Deepgram Nova transcription provider
type DeepgramConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects the audio blob backend
type StorageConfig struct {
	Backend  string                `mapstructure:"backend" validate:"oneof=local s3 supabase"`
	Local    LocalStorageConfig    `mapstructure:"local"`
	S3       S3StorageConfig       `mapstructure:"s3"`
	Supabase SupabaseStorageConfig `mapstructure:"supabase"`
}

// LocalStorageConfig stores blobs on disk and serves them under /media
type LocalStorageConfig struct {
	Path          string `mapstructure:"path"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// S3StorageConfig configures an S3 or S3-compatible bucket
type S3StorageConfig struct {
	Bucket         string `mapstructure:"bucket"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
	PublicURL      string `mapstructure:"public_url"`
}

// SupabaseStorageConfig configures a Supabase storage bucket
type SupabaseStorageConfig struct {
	URL    string `mapstructure:"url"`
	Key    string `mapstructure:"key"`
	Bucket string `mapstructure:"bucket"`
}

// CleanupConfig drives the orphaned blob janitor
type CleanupConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BatchSize   int           `mapstructure:"batch_size"`
}
