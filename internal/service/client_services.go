// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/models"
)

// ClientServices aggregates the services of a key-value replica.
type ClientServices struct {
	Client      *KVClient
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

// NewClientServices creates a replica identified by clientID that talks to
// the server through transport.
func NewClientServices(clientID string, transport UpdateTransport[string, models.KVPatch], m *metrics.Metrics, log *logger.Logger) *ClientServices {
	client := NewKVClient(clientID)
	syncSvc := NewClientSyncService(client, transport, m, log)

	return &ClientServices{
		Client:      client,
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc, log),
	}
}
