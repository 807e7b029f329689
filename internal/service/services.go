// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/store"
	"github.com/MKhiriev/go-delta-sync/internal/workers"
	"github.com/MKhiriev/go-delta-sync/models"
)

// Services aggregates the server-side services and their background
// workers.
type Services struct {
	Server         *KVServer
	SyncService    SyncService
	StateService   StateService
	AppInfoService AppInfoService

	// Persister is nil when the server runs without a database.
	Persister *StatePersister
	Reaper    *ClientReaper[string]
	Workers   *workers.Workers
}

// NewServices builds the server around initial, the state loaded from repo.
// repo may be nil, in which case the state lives in memory only. The client
// reaper is created only when a client TTL is configured.
func NewServices(initial map[string]string, repo store.StateRepository, cfg config.StructuredConfig, build models.AppBuildInfo, m *metrics.Metrics, log *logger.Logger) *Services {
	server := NewKVServer(initial, log, WithMetrics(m))
	kv := NewKVService(server, log)

	s := &Services{
		Server:         server,
		SyncService:    NewSyncValidationService().Wrap(kv),
		StateService:   NewStateValidationService().Wrap(kv),
		AppInfoService: NewAppInfoService(cfg.App, build, log),
		Workers:        workers.NewWorkers(),
	}

	if repo != nil {
		s.Persister = NewStatePersister(server, repo, initial, cfg.Workers.PersistInterval, m, log)
		s.Workers.Add(s.Persister)
	}
	if cfg.Workers.ClientTTL > 0 {
		s.Reaper = NewClientReaper[string](server, cfg.Workers.ReapInterval, cfg.Workers.ClientTTL, log)
		s.Workers.Add(s.Reaper)
	}

	return s
}
