// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", HashKey: "env-key"}},
		&StructuredConfig{App: App{Version: "2.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "env-key", cfg.App.HashKey, "zero fields must not override")
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("STORAGE_DB_DRIVER", "sqlite3")
	t.Setenv("STORAGE_DB_DATABASE_URI", "/tmp/state.db")
	t.Setenv("SERVER_ADDRESS", "localhost:8080")
	t.Setenv("ADAPTER_CLIENT_ID", "replica-1")
	t.Setenv("WORKERS_SYNC_INTERVAL", "2s")
	t.Setenv("WORKERS_CLIENT_TTL", "1m")

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	got := b.configs[0]
	assert.Equal(t, "env-version", got.App.Version)
	assert.Equal(t, DriverSQLite, got.Storage.DB.Driver)
	assert.Equal(t, "/tmp/state.db", got.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", got.Server.HTTPAddress)
	assert.Equal(t, "replica-1", got.Adapter.ClientID)
	assert.Equal(t, 2*time.Second, got.Workers.SyncInterval)
	assert.Equal(t, time.Minute, got.Workers.ClientTTL)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("WORKERS_SYNC_INTERVAL", "soon")

	b := newConfigBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_ParsesArgs(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{
		"-a", "127.0.0.1:8081",
		"-grpc-address", "localhost:9091",
		"-server-url", "http://localhost:8081",
		"-client-id", "c-1",
		"-request-timeout", "5s",
		"-persist-interval", "10s",
		"-tui",
	})

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	got := b.configs[0]
	assert.Equal(t, "127.0.0.1:8081", got.Server.HTTPAddress)
	assert.Equal(t, "localhost:9091", got.Server.GRPCAddress)
	assert.Equal(t, "http://localhost:8081", got.Adapter.HTTPAddress)
	assert.Equal(t, "c-1", got.Adapter.ClientID)
	assert.Equal(t, 5*time.Second, got.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, got.Adapter.RequestTimeout)
	assert.Equal(t, 10*time.Second, got.Workers.PersistInterval)
	assert.True(t, got.App.Interactive)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-nope"})

	assert.Error(t, b.err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "localhost:8080"},
		{in: "10.0.0.1:1", want: "10.0.0.1:1"},
		{in: ":9090", want: ":9090"},
		{in: "8080", wantErr: true},
		{in: "host:abc", wantErr: true},
		{in: "localhost:0", wantErr: true},
		{in: "localhost:70000", wantErr: true},
		{in: "example:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"version": "json-version"},
		"workers": map[string]any{"sync_interval": "3s", "client_ttl": float64(time.Minute)},
		"storage": map[string]any{"db": map[string]any{"driver": "pgx", "dsn": "postgres://x"}},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	got := b.configs[1]
	assert.Equal(t, "json-version", got.App.Version)
	assert.Equal(t, 3*time.Second, got.Workers.SyncInterval)
	assert.Equal(t, time.Minute, got.Workers.ClientTTL)
	assert.Equal(t, DriverPostgres, got.Storage.DB.Driver)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(raw))

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
