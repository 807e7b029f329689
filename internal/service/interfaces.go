// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-delta-sync/models"
)

// SyncService is the server side of the replication protocol as seen by
// the transports.
type SyncService interface {
	// GetClientDiff returns the update the client must apply to catch up
	// with the authoritative state.
	GetClientDiff(ctx context.Context, req models.KVUpdateRequest) (models.KVUpdate, error)

	// ForgetClient drops what the server remembers about a client.
	ForgetClient(ctx context.Context, id string) error
}

// StateService reads and mutates the authoritative key-value state.
type StateService interface {
	GetState(ctx context.Context) models.StateResponse
	SetValue(ctx context.Context, entry models.StateEntry) error
	DeleteValue(ctx context.Context, key string) error
}

// SyncServiceWrapper decorates a [SyncService], e.g. with validation.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

// StateServiceWrapper decorates a [StateService].
type StateServiceWrapper interface {
	Wrap(StateService) StateService
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfoResponse
}

// UpdateTransport carries update requests to the server and returns its
// answer.
type UpdateTransport[ID comparable, P any] interface {
	RequestUpdate(ctx context.Context, req models.ClientUpdateRequest[ID]) (models.ClientUpdate[P], error)
}

// ClientSyncService performs one reconciliation round trip.
type ClientSyncService interface {
	// Sync requests an update for the replica and applies it. A replica
	// found out of step is resynchronized with one more request.
	Sync(ctx context.Context) error
}

// ClientSyncJob runs [ClientSyncService.Sync] in the background.
type ClientSyncJob interface {
	// Start launches the job. Any previous run is stopped first. A
	// non-positive interval falls back to the default.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the job and waits for it to exit.
	Stop()
}
