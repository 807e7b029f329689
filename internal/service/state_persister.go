// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/diff"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/state"
	"github.com/MKhiriev/go-delta-sync/internal/store"
	"github.com/MKhiriev/go-delta-sync/internal/workers"
)

const (
	persistAttempts = 3
	persistBackoff  = 200 * time.Millisecond
	flushTimeout    = 5 * time.Second
)

// KVStateSource provides consistent copies of the key-value state.
type KVStateSource interface {
	State() state.Map[string, string]
}

// StatePersister periodically writes the changes made to the authoritative
// state since the last successful write. It implements [workers.Worker].
type StatePersister struct {
	source KVStateSource
	repo   store.StateRepository

	mu        sync.Mutex
	persisted map[string]string

	ticker  *workers.Ticker
	backoff time.Duration

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewStatePersister creates a persister that flushes source into repo every
// interval. persisted is the state the repository holds at start.
func NewStatePersister(source KVStateSource, repo store.StateRepository, persisted map[string]string, interval time.Duration, m *metrics.Metrics, log *logger.Logger) *StatePersister {
	if log == nil {
		log = logger.Nop()
	}
	p := &StatePersister{
		source:    source,
		repo:      repo,
		persisted: maps.Clone(persisted),
		backoff:   persistBackoff,
		metrics:   m,
		logger:    log,
	}
	if p.persisted == nil {
		p.persisted = make(map[string]string)
	}
	p.ticker = workers.NewTicker(interval, p.tick)
	return p
}

// Start implements [workers.Worker].
func (p *StatePersister) Start(ctx context.Context) {
	p.ticker.Start(ctx)
}

// Stop implements [workers.Worker]. It stops the ticker and writes any
// pending change.
func (p *StatePersister) Stop() {
	p.ticker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := p.Flush(ctx); err != nil {
		p.logger.Err(err).Msg("final state flush failed")
	}
}

func (p *StatePersister) tick(ctx context.Context) {
	if err := p.Flush(ctx); err != nil && ctx.Err() == nil {
		p.logger.Err(err).Msg("state flush failed")
	}
}

// Flush writes the difference between the last persisted state and the
// current one. Nothing is written when they are equal. Transient repository
// errors are retried a few times.
func (p *StatePersister) Flush(ctx context.Context) error {
	if p.repo == nil {
		return ErrNoStateRepository
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.source.State()
	patch := diff.Generate(p.persisted, current)
	if diff.IsEmpty(patch) {
		return nil
	}

	var err error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		if err = p.repo.ApplyPatch(ctx, patch); err == nil {
			break
		}

		class := p.repo.Classify(err)
		p.metrics.PersistFailed(class.String())
		if class != store.Retryable || attempt == persistAttempts {
			return fmt.Errorf("persist patch of %d entries: %w", patch.Len(), err)
		}

		p.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying state flush")
		select {
		case <-ctx.Done():
			return fmt.Errorf("persist patch: %w", ctx.Err())
		case <-time.After(p.backoff * time.Duration(attempt)):
		}
	}

	p.persisted = current
	p.metrics.PatchPersisted()
	p.logger.Debug().Int("altered", len(patch.Altered)).Int("removed", len(patch.Removed)).Msg("state flushed")

	return nil
}
