package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Storage backend names
const (
	BackendJSONBlob = "jsonblob"
	BackendAzure    = "azure"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Upload  UploadConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	Endpoint       string
	APIKey         string
	RequestTimeout time.Duration
}

// StorageConfig selects and configures the record store backend
type StorageConfig struct {
	Backend  string // jsonblob, azure, or postgres
	JSONBlob JSONBlobConfig
	Azure    AzureStorageConfig
	Postgres PostgresConfig
}

// JSONBlobConfig holds hosted JSON blob store configuration
type JSONBlobConfig struct {
	BaseURL        string
	BlobID         string
	RequestTimeout time.Duration
}

// AzureStorageConfig holds Azure Blob Storage configuration
type AzureStorageConfig struct {
	AccountName string
	AccountKey  string
	Container   string
	BlobName    string
}

// PostgresConfig holds PostgreSQL configuration
type PostgresConfig struct {
	URL string
}

// UploadConfig holds upload validation configuration
type UploadConfig struct {
	MaxFileSize int64 // bytes
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Gemini defaults
	v.SetDefault("gemini.endpoint", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-image-preview:generateContent")
	v.SetDefault("gemini.requesttimeout", 60*time.Second)

	// Storage defaults
	v.SetDefault("storage.backend", BackendJSONBlob)
	v.SetDefault("storage.jsonblob.baseurl", "https://jsonblob.com/api")
	v.SetDefault("storage.jsonblob.requesttimeout", 15*time.Second)
	v.SetDefault("storage.azure.container", "health-data")
	v.SetDefault("storage.azure.blobname", "health-records.json")

	// Upload defaults
	v.SetDefault("upload.maxfilesize", int64(10*1024*1024))

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Gemini
	v.BindEnv("gemini.endpoint", "GEMINI_API_ENDPOINT")
	v.BindEnv("gemini.apikey", "GEMINI_API_KEY")

	// Storage
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.jsonblob.baseurl", "JSONBLOB_BASE_URL")
	v.BindEnv("storage.jsonblob.blobid", "JSONBLOB_BLOB_ID")
	v.BindEnv("storage.azure.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("storage.azure.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("storage.azure.container", "AZURE_STORAGE_CONTAINER")
	v.BindEnv("storage.azure.blobname", "AZURE_STORAGE_BLOB_NAME")
	v.BindEnv("storage.postgres.url", "DATABASE_URL")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Gemini.Endpoint == "" {
		return fmt.Errorf("gemini.endpoint is required")
	}

	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.apikey is required")
	}

	switch c.Storage.Backend {
	case BackendJSONBlob:
		if c.Storage.JSONBlob.BlobID == "" {
			return fmt.Errorf("storage.jsonblob.blobid is required for the jsonblob backend")
		}
	case BackendAzure:
		if c.Storage.Azure.AccountName == "" || c.Storage.Azure.AccountKey == "" {
			return fmt.Errorf("azure storage credentials are required for the azure backend")
		}
	case BackendPostgres:
		if c.Storage.Postgres.URL == "" {
			return fmt.Errorf("storage.postgres.url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}

	return nil
}
