// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// StructuredConfig is the top-level configuration container for the
// go-delta-sync binaries. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the integrity key and
	// the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the settings of the database the server persists its
	// authoritative state to.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client-side view of the server: where to reach it
	// and under which client id.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the periods of background jobs on both sides.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header). Empty disables the check.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// Interactive makes the client render a live terminal view of its
	// replica instead of running headless.
	// Env: APP_INTERACTIVE
	Interactive bool `env:"INTERACTIVE"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the Data Source Name used to open the database connection:
	// a postgres URL for the pgx driver or a file path for sqlite3.
	// Empty keeps the state in memory only.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Driver selects the database/sql driver: "pgx" or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC server listens,
	// in "host:port" format (e.g. "0.0.0.0:9090").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings of the client transport.
type Adapter struct {
	// HTTPAddress is the base address of the server's HTTP API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the address of the server's gRPC endpoint. When set,
	// the client uses gRPC instead of HTTP.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ClientID identifies this replica to the server. A random id is
	// generated when empty.
	// Env: ADAPTER_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the client sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// PersistInterval is the period of the server state persister.
	// Env: WORKERS_PERSIST_INTERVAL
	PersistInterval time.Duration `env:"PERSIST_INTERVAL"`

	// ReapInterval is the period of the idle client reaper.
	// Env: WORKERS_REAP_INTERVAL
	ReapInterval time.Duration `env:"REAP_INTERVAL"`

	// ClientTTL is how long a client may stay silent before the server
	// forgets it. Zero disables reaping.
	// Env: WORKERS_CLIENT_TTL
	ClientTTL time.Duration `env:"CLIENT_TTL"`
}

// GetStructuredConfig loads, merges, and validates the server
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
