// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

// Package config loads the service configuration in three layers:
// struct defaults, an optional YAML file, then MATERIUM_ environment
// variables. Later layers win.
package config

import (
	"fmt"
	"time"

	"github.com/quarrylabs/materium/internal/auth"
	"github.com/quarrylabs/materium/internal/compare"
	"github.com/quarrylabs/materium/internal/database"
	"github.com/quarrylabs/materium/internal/logging"
	"github.com/quarrylabs/materium/internal/recommend"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig     `koanf:"server"`
	Database database.Config  `koanf:"database"`
	Auth     auth.Config      `koanf:"auth"`
	Engine   recommend.Config `koanf:"engine"`
	Compare  CompareConfig    `koanf:"compare"`
	Logging  LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed origins; empty disables CORS.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is requests per client per RateWindow; 0 disables
	// rate limiting.
	RateLimit  int           `koanf:"rate_limit"`
	RateWindow time.Duration `koanf:"rate_window"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CompareConfig holds comparison list settings plus the Badger path
// they are stored under.
type CompareConfig struct {
	// Path is the Badger directory; empty means in-memory.
	Path string `koanf:"path"`

	TTL time.Duration `koanf:"ttl"`
}

// LoggingConfig mirrors logging.Config without the output writer,
// which is not configurable from files or the environment.
type LoggingConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// ToLogging converts to the logging package's config.
func (c LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:     c.Level,
		Format:    c.Format,
		Caller:    c.Caller,
		Timestamp: c.Timestamp,
	}
}

// defaultConfig returns the full default configuration.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimit:       100,
			RateWindow:      time.Minute,
		},
		Database: database.DefaultConfig(),
		Auth:     auth.DefaultConfig(),
		Engine:   recommend.DefaultConfig(),
		Compare: CompareConfig{
			Path: "data/compare",
			TTL:  compare.DefaultConfig().TTL,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Timestamp: true,
		},
	}
}

// Validate checks cross-field constraints not covered by the
// per-package configs.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
