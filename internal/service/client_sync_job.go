// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/workers"
)

type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	mu     sync.Mutex
	ticker *workers.Ticker
}

// NewClientSyncJob creates a job that calls syncService.Sync right after
// Start and then on every tick. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, log *logger.Logger) ClientSyncJob {
	if log == nil {
		log = logger.Nop()
	}
	return &clientSyncJob{syncService: syncService, logger: log}
}

// Start implements ClientSyncJob. If interval is zero or negative it
// defaults to [workers.DefaultInterval]. The job exits when ctx is cancelled
// or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	j.Stop()

	ticker := workers.NewTicker(interval, j.run).Immediately()

	j.mu.Lock()
	j.ticker = ticker
	j.mu.Unlock()

	ticker.Start(ctx)
}

// Stop implements ClientSyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	ticker := j.ticker
	j.ticker = nil
	j.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
}

func (j *clientSyncJob) run(ctx context.Context) {
	if err := j.syncService.Sync(ctx); err != nil && ctx.Err() == nil {
		j.logger.Err(err).Msg("sync failed")
	}
}
