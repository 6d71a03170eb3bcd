package config

import (
	"time"

	"github.com/vietddude/readflow/internal/infra/blogapi"
	redisstore "github.com/vietddude/readflow/internal/infra/kv/redis"
	sqlitestore "github.com/vietddude/readflow/internal/infra/kv/sqlite"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server  ServerConfig   `yaml:"server"`
	API     blogapi.Config `yaml:"api"`
	Retry   RetryConfig    `yaml:"retry"`
	Paging  PagingConfig   `yaml:"paging"`
	History HistoryConfig  `yaml:"history"`
	Store   StoreConfig    `yaml:"store"`
	Logging LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds health/metrics HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Lang  string `yaml:"lang"`  // fa, en — language for user-facing messages
}

// RetryConfig holds the fetch executor settings.
type RetryConfig struct {
	MaxRetries      int           `yaml:"max_retries"`
	InitialDelay    time.Duration `yaml:"initial_delay"`
	BackoffMultiple float64       `yaml:"backoff_multiple"`
	AttemptTimeout  time.Duration `yaml:"attempt_timeout"`
}

// PagingConfig holds pagination defaults.
type PagingConfig struct {
	PageSize    int    `yaml:"page_size"`
	WindowWidth int    `yaml:"window_width"`
	Mode        string `yaml:"mode"` // traditional, infinite_scroll, load_more
}

// HistoryConfig holds recency-store settings.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// StoreConfig selects and configures the persisted kv backend.
type StoreConfig struct {
	// Backend is one of "memory", "sqlite", "redis".
	Backend string             `yaml:"backend"`
	SQLite  sqlitestore.Config `yaml:"sqlite"`
	Redis   redisstore.Config  `yaml:"redis"`
}
