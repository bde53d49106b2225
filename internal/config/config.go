// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink kinds accepted by Config.Sink
const (
	SinkMemory   = "memory"
	SinkFile     = "file"
	SinkRedis    = "redis"
	SinkPostgres = "postgres"
	SinkMongo    = "mongo"
	SinkMinIO    = "minio"
)

// Config represents the configuration that can be loaded from a JSON file or the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Persistence
	Sink string `json:"sink,omitempty" mapstructure:"sink"` // memory, file, redis, postgres, mongo, minio
	Key  string `json:"key,omitempty" mapstructure:"key"`   // Key the document is written under
	Dir  string `json:"dir,omitempty" mapstructure:"dir"`   // Directory for the file sink

	// Redis
	RedisAddr     string `json:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisPassword string `json:"redis_password,omitempty" mapstructure:"redis_password"`
	RedisDB       int    `json:"redis_db,omitempty" mapstructure:"redis_db"`
	RedisPrefix   string `json:"redis_prefix,omitempty" mapstructure:"redis_prefix"`

	// PostgreSQL
	DatabaseURL string `json:"database_url,omitempty" mapstructure:"database_url"`

	// MongoDB
	MongoURI        string `json:"mongo_uri,omitempty" mapstructure:"mongo_uri"`
	MongoDatabase   string `json:"mongo_database,omitempty" mapstructure:"mongo_database"`
	MongoCollection string `json:"mongo_collection,omitempty" mapstructure:"mongo_collection"`

	// MinIO / S3
	MinIOEndpoint  string `json:"minio_endpoint,omitempty" mapstructure:"minio_endpoint"`
	MinIOAccessKey string `json:"minio_access_key,omitempty" mapstructure:"minio_access_key"`
	MinIOSecretKey string `json:"minio_secret_key,omitempty" mapstructure:"minio_secret_key"`
	MinIOBucket    string `json:"minio_bucket,omitempty" mapstructure:"minio_bucket"`
	MinIOUseSSL    bool   `json:"minio_use_ssl,omitempty" mapstructure:"minio_use_ssl"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" mapstructure:"log_level"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" mapstructure:"log_format"` // text, json

	// explicit holds the JSON keys present in the loaded file, so an explicit
	// zero or false is not mistaken for an unset field
	explicit map[string]bool
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Sink:            SinkFile,
		Key:             "resumeData",
		Dir:             "data",
		RedisAddr:       "localhost:6379",
		RedisPrefix:     "resume:",
		MongoDatabase:   "resume_builder",
		MongoCollection: "resume_documents",
		MinIOBucket:     "resumes",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	cfg.explicit = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.explicit[k] = true
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values and that the selected
// sink has what it needs to connect.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkMemory:
	case SinkFile:
		if c.Dir == "" {
			return fmt.Errorf("config error: 'dir' is required for the file sink")
		}
	case SinkRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for the redis sink")
		}
	case SinkPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres sink")
		}
	case SinkMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("config error: 'mongo_uri' is required for the mongo sink")
		}
	case SinkMinIO:
		if c.MinIOEndpoint == "" || c.MinIOBucket == "" {
			return fmt.Errorf("config error: 'minio_endpoint' and 'minio_bucket' are required for the minio sink")
		}
	default:
		return fmt.Errorf("config error: unknown sink %q", c.Sink)
	}

	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("config error: 'key' must not be empty")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer a config file over environment values and built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&result.Sink, defaults.Sink)
	fill(&result.Key, defaults.Key)
	fill(&result.Dir, defaults.Dir)
	fill(&result.RedisAddr, defaults.RedisAddr)
	fill(&result.RedisPassword, defaults.RedisPassword)
	fill(&result.RedisPrefix, defaults.RedisPrefix)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.MongoURI, defaults.MongoURI)
	fill(&result.MongoDatabase, defaults.MongoDatabase)
	fill(&result.MongoCollection, defaults.MongoCollection)
	fill(&result.MinIOEndpoint, defaults.MinIOEndpoint)
	fill(&result.MinIOAccessKey, defaults.MinIOAccessKey)
	fill(&result.MinIOSecretKey, defaults.MinIOSecretKey)
	fill(&result.MinIOBucket, defaults.MinIOBucket)
	fill(&result.LogLevel, defaults.LogLevel)
	fill(&result.LogFormat, defaults.LogFormat)

	// Int and bool fields: use default unless the file set them, even to zero or false
	if result.RedisDB == 0 && !result.explicit["redis_db"] {
		result.RedisDB = defaults.RedisDB
	}
	if !result.MinIOUseSSL && !result.explicit["minio_use_ssl"] {
		result.MinIOUseSSL = defaults.MinIOUseSSL
	}

	return result
}
