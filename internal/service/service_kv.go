// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/state"
	"github.com/MKhiriev/go-delta-sync/models"
)

// KVServer is the [SyncServer] of the shipped key-value store.
type KVServer = SyncServer[string, state.Map[string, string], models.KVPatch]

// KVClient is the [SyncClient] of the shipped key-value store. Its replica
// is a concurrent map so that readers never block the sync job.
type KVClient = SyncClient[string, *state.ConcurrentMap[string, string], models.KVPatch]

// NewKVServer creates a key-value server starting from a copy of initial.
func NewKVServer(initial map[string]string, log *logger.Logger, opts ...ServerOption) *KVServer {
	return NewSyncServer[string, state.Map[string, string], models.KVPatch](state.Map[string, string](initial).Clone(), log, opts...)
}

// NewKVClient creates a key-value replica identified by id.
func NewKVClient(id string) *KVClient {
	return NewSyncClient[string, *state.ConcurrentMap[string, string], models.KVPatch](id)
}

// KVService is the transport-facing surface of a [KVServer].
type KVService interface {
	SyncService
	StateService
}

type kvService struct {
	server *KVServer
	logger *logger.Logger
}

// NewKVService adapts server to the context-aware transport interfaces.
func NewKVService(server *KVServer, log *logger.Logger) KVService {
	return &kvService{server: server, logger: log}
}

func (s *kvService) GetClientDiff(ctx context.Context, req models.KVUpdateRequest) (models.KVUpdate, error) {
	return s.server.GetClientDiff(req), nil
}

func (s *kvService) ForgetClient(ctx context.Context, id string) error {
	found := s.server.ForgetClient(id)
	logger.FromContext(ctx).Info().Str("client_id", id).Bool("found", found).Msg("client forgotten")
	return nil
}

func (s *kvService) GetState(ctx context.Context) models.StateResponse {
	current := s.server.State()
	return models.StateResponse{
		Fingerprint: current.Fingerprint(),
		Entries:     current,
		Clients:     s.server.ClientCount(),
	}
}

func (s *kvService) SetValue(ctx context.Context, entry models.StateEntry) error {
	s.server.Update(func(m state.Map[string, string]) {
		m[entry.Key] = entry.Value
	})
	return nil
}

func (s *kvService) DeleteValue(ctx context.Context, key string) error {
	var found bool
	s.server.Update(func(m state.Map[string, string]) {
		if _, found = m[key]; found {
			delete(m, key)
		}
	})
	if !found {
		return ErrKeyNotFound
	}
	return nil
}
