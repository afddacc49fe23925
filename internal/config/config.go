// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package config loads and validates the layered application
// configuration: built-in defaults, then an optional YAML file, then
// PAPERLENS_-prefixed environment variables, highest last. All settings
// are fixed at construction; nothing is mutable mid-flight.
package config

import (
	"fmt"
	"time"

	"github.com/paperlens/paperlens/internal/logging"
	"github.com/paperlens/paperlens/internal/recommend"
	"github.com/paperlens/paperlens/internal/traverse"
	"github.com/paperlens/paperlens/internal/truth"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	API       APIConfig        `koanf:"api"`
	Logging   logging.Config   `koanf:"logging"`
	Truth     truth.Config     `koanf:"truth"`
	Traverse  traverse.Config  `koanf:"traverse"`
	Recommend recommend.Config `koanf:"recommend"`
	Snapshot  SnapshotConfig   `koanf:"snapshot"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Host is the bind address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout and WriteTimeout bound request and response IO.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig configures the HTTP middleware surface.
type APIConfig struct {
	// CORSOrigins is the CORS allow-list. Empty disables CORS handling.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitDisabled turns off all rate limiting.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// SnapshotConfig configures graph persistence.
type SnapshotConfig struct {
	// Enabled turns snapshot persistence on. When off the graph is
	// memory-only and rebuilt from ingestion after a restart.
	Enabled bool `koanf:"enabled"`

	// Path is the Badger database directory.
	Path string `koanf:"path"`

	// Interval is the periodic save cadence.
	Interval time.Duration `koanf:"interval"`
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: false,
		},
		Logging:   logging.DefaultConfig(),
		Truth:     truth.DefaultConfig(),
		Traverse:  traverse.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
		Snapshot: SnapshotConfig{
			Enabled:  true,
			Path:     "/data/paperlens/snapshot",
			Interval: 5 * time.Minute,
		},
	}
}

// Validate checks the whole tree, failing fast at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if err := c.Truth.Validate(); err != nil {
		return fmt.Errorf("truth: %w", err)
	}
	if err := c.Traverse.Validate(); err != nil {
		return fmt.Errorf("traverse: %w", err)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if c.Snapshot.Enabled {
		if c.Snapshot.Path == "" {
			return fmt.Errorf("snapshot.path required when snapshots are enabled")
		}
		if c.Snapshot.Interval <= 0 {
			return fmt.Errorf("snapshot.interval must be positive")
		}
	}
	return nil
}
