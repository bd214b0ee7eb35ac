package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Logging LogConfig
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	Transport string `envconfig:"FILEDB_TRANSPORT" default:"stdio"`
	Port      string `envconfig:"FILEDB_PORT" default:"8081"`
}

// StorageConfig locates the catalog database and the file tree.
type StorageConfig struct {
	// DataDir holds catalog.db and is the base the file tree is resolved against.
	DataDir string `envconfig:"FILEDB_DATA_DIR" default:"./data"`
	// Root is the first path element of every stored file path.
	Root string `envconfig:"FILEDB_ROOT" default:"filedb"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"FILEDB_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"FILEDB_LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Transport != "stdio" && cfg.Server.Transport != "http" {
		return nil, fmt.Errorf("unknown transport %q (use stdio or http)", cfg.Server.Transport)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Transport: "stdio",
			Port:      "8081",
		},
		Storage: StorageConfig{
			DataDir: "./data",
			Root:    "filedb",
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}
