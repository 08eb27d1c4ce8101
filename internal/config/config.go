// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory prediction request queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of pipeline workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the request deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the document store.
	ShardCount int `koanf:"shard_count"`

	// DefaultHorizonMonths is used when a request omits the horizon.
	DefaultHorizonMonths int `koanf:"default_horizon_months"`

	// DefaultIntervalMonths is used when a request omits the interval.
	DefaultIntervalMonths int `koanf:"default_interval_months"`

	// MaxHorizonMonths caps the horizon a single request may ask for.
	MaxHorizonMonths int `koanf:"max_horizon_months"`
}

// New creates a Config populated with defaults. Context is accepted first to
// match the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		QueueSize:             10_000,
		WorkerCount:           runtime.NumCPU() * 2,
		DedupeSize:            50_000,
		ShardCount:            16,
		DefaultHorizonMonths:  90,
		DefaultIntervalMonths: 6,
		MaxHorizonMonths:      240,
	}
}
