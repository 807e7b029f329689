// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/workers"
)

// IdleEvicter forgets clients that have been silent for too long.
type IdleEvicter[ID comparable] interface {
	EvictIdle(olderThan time.Duration) []ID
}

// ClientReaper periodically forgets idle clients so that the registry does
// not grow without bound. It implements [workers.Worker].
type ClientReaper[ID comparable] struct {
	evicter IdleEvicter[ID]
	ttl     time.Duration
	ticker  *workers.Ticker
	logger  *logger.Logger
}

// NewClientReaper creates a reaper that, every interval, forgets clients
// silent for longer than ttl.
func NewClientReaper[ID comparable](evicter IdleEvicter[ID], interval, ttl time.Duration, log *logger.Logger) *ClientReaper[ID] {
	if log == nil {
		log = logger.Nop()
	}
	r := &ClientReaper[ID]{evicter: evicter, ttl: ttl, logger: log}
	r.ticker = workers.NewTicker(interval, func(context.Context) { r.Reap() })
	return r
}

// Start implements [workers.Worker].
func (r *ClientReaper[ID]) Start(ctx context.Context) {
	r.ticker.Start(ctx)
}

// Stop implements [workers.Worker].
func (r *ClientReaper[ID]) Stop() {
	r.ticker.Stop()
}

// Reap forgets idle clients once and returns their ids.
func (r *ClientReaper[ID]) Reap() []ID {
	evicted := r.evicter.EvictIdle(r.ttl)
	if len(evicted) > 0 {
		r.logger.Info().Int("count", len(evicted)).Dur("ttl", r.ttl).Msg("idle clients forgotten")
	}
	return evicted
}
