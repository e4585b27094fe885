// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSecret = "unit-test-secret-0123456789-0123456789"

func TestLoad_DefaultsWithSecret(t *testing.T) {
	t.Setenv("MATERIUM_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Database.Path != "data/materium.db" {
		t.Errorf("default database path = %q", cfg.Database.Path)
	}
	if cfg.Engine.DefaultK != 5 || cfg.Engine.MaxK != 15 {
		t.Errorf("engine defaults: %+v", cfg.Engine)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	if _, err := Load(); err == nil {
		t.Error("expected validation error without jwt secret")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MATERIUM_AUTH_JWT_SECRET", testSecret)
	t.Setenv("MATERIUM_SERVER_PORT", "9191")
	t.Setenv("MATERIUM_DATABASE_MAX_MEMORY", "1GB")
	t.Setenv("MATERIUM_ENGINE_DEFAULT_K", "8")
	t.Setenv("MATERIUM_LOGGING_LEVEL", "debug")
	t.Setenv("MATERIUM_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("max_memory = %q", cfg.Database.MaxMemory)
	}
	if cfg.Engine.DefaultK != 8 {
		t.Errorf("default_k = %d", cfg.Engine.DefaultK)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != want[0] || cfg.Server.CORSOrigins[1] != want[1] {
		t.Errorf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := strings.Join([]string{
		"server:",
		"  port: 8443",
		"auth:",
		"  jwt_secret: " + testSecret,
		"compare:",
		"  ttl: 1h",
	}, "\n")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8443 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Compare.TTL.Hours() != 1 {
		t.Errorf("compare ttl = %v", cfg.Compare.TTL)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8443\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MATERIUM_AUTH_JWT_SECRET", testSecret)
	t.Setenv("MATERIUM_SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, env should override file", cfg.Server.Port)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MATERIUM_SERVER_PORT", "server.port"},
		{"MATERIUM_SERVER_READ_TIMEOUT", "server.read_timeout"},
		{"MATERIUM_DATABASE_MAX_MEMORY", "database.max_memory"},
		{"MATERIUM_AUTH_JWT_SECRET", "auth.jwt_secret"},
		{"MATERIUM_ENGINE_DEFAULT_K", "engine.default_k"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		cfg.Auth.JWTSecret = testSecret
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg := base()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	cfg = base()
	cfg.Database.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty database path")
	}

	cfg = base()
	cfg.Engine.DefaultK = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative k")
	}
}
