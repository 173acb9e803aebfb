package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. VOICENOTES_SERVER_PORT
const EnvPrefix = "VOICENOTES"

var (
	once    sync.Once
	initErr error
)

// Well-known secret names accepted in addition to the prefixed keys
var envAliases = map[string]string{
	"providers.gemini.api_key":   "GEMINI_API_KEY",
	"providers.openai.api_key":   "OPENAI_API_KEY",
	"providers.deepgram.api_key": "DEEPGRAM_API_KEY",
	"database.dsn":               "DATABASE_URL",
	"storage.supabase.url":       "SUPABASE_URL",
	"storage.supabase.key":       "SUPABASE_SERVICE_KEY",
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// A missing .env is normal outside local development
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			initErr = fmt.Errorf("error loading .env: %w", err)
			return
		}

		setDefaults()

		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		for key, alias := range envAliases {
			prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
			if err := viper.BindEnv(key, prefixed, alias); err != nil {
				initErr = fmt.Errorf("binding env for %s: %w", key, err)
				return
			}
		}

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// reset clears the Init guard so tests can reload configuration
func reset() {
	once = sync.Once{}
	initErr = nil
	viper.Reset()
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

func validate() error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks struct tags and the cross-field rules tags cannot express
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when database.driver is postgres")
	}

	switch c.Storage.Backend {
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 backend")
		}
	case "supabase":
		if c.Storage.Supabase.URL == "" || c.Storage.Supabase.Bucket == "" {
			return fmt.Errorf("storage.supabase.url and storage.supabase.bucket are required for the supabase backend")
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 60*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./data/voicenotes.db")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.verbose", false)
	viper.SetDefault("database.max_open_connections", 25)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.connect_retries", 5)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.json", false)

	viper.SetDefault("upload.max_size", 50*1024*1024)

	// Provider defaults
	viper.SetDefault("providers.gemini.api_key", "")
	viper.SetDefault("providers.gemini.model", "gemini-1.5-flash")
	viper.SetDefault("providers.gemini.llm_model", "gemini-1.5-flash")
	viper.SetDefault("providers.gemini.base_url", "")
	viper.SetDefault("providers.openai.api_key", "")
	viper.SetDefault("providers.openai.api_url", "https://api.openai.com/v1")
	viper.SetDefault("providers.openai.model", "whisper-1")
	viper.SetDefault("providers.openai.timeout", 120*time.Second)
	viper.SetDefault("providers.deepgram.api_key", "")
	viper.SetDefault("providers.deepgram.api_url", "https://api.deepgram.com/v1")
	viper.SetDefault("providers.deepgram.model", "nova-2")
	viper.SetDefault("providers.deepgram.timeout", 120*time.Second)

	// Storage defaults
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.local.path", "./data/blobs")
	viper.SetDefault("storage.local.public_base_url", "http://localhost:8080/media")
	viper.SetDefault("storage.s3.bucket", "")
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.s3.endpoint", "")
	viper.SetDefault("storage.s3.access_key", "")
	viper.SetDefault("storage.s3.secret_key", "")
	viper.SetDefault("storage.s3.force_path_style", false)
	viper.SetDefault("storage.s3.public_url", "")
	viper.SetDefault("storage.supabase.url", "")
	viper.SetDefault("storage.supabase.key", "")
	viper.SetDefault("storage.supabase.bucket", "recordings")

	// Orphaned blob janitor
	viper.SetDefault("cleanup.enabled", true)
	viper.SetDefault("cleanup.interval", 10*time.Minute)
	viper.SetDefault("cleanup.max_attempts", 10)
	viper.SetDefault("cleanup.batch_size", 50)
}
