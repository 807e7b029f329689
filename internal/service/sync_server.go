// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/state"
	"github.com/MKhiriev/go-delta-sync/internal/store"
	"github.com/MKhiriev/go-delta-sync/models"
)

// SyncServer owns the authoritative state and remembers, per client, the
// state it last sent to that client.
//
// The state is guarded by a read/write lock. Every stored snapshot is a
// private clone that is never mutated afterwards, so patches can be computed
// from registry records without holding any lock.
type SyncServer[ID comparable, S state.State[S, P], P any] struct {
	mu    sync.RWMutex
	state S

	registry *store.ClientRegistry[ID, S]

	metrics *metrics.Metrics
	now     func() time.Time
	logger  *logger.Logger
}

// ServerOption customizes a [SyncServer].
type ServerOption func(*serverOptions)

type serverOptions struct {
	metrics *metrics.Metrics
	now     func() time.Time
}

// WithMetrics makes the server record served updates and registry changes.
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(o *serverOptions) { o.metrics = m }
}

// WithClock replaces time.Now as the source of client contact times.
func WithClock(now func() time.Time) ServerOption {
	return func(o *serverOptions) { o.now = now }
}

// NewSyncServer creates a server whose authoritative state is initial.
// The server takes ownership of initial.
func NewSyncServer[ID comparable, S state.State[S, P], P any](initial S, log *logger.Logger, opts ...ServerOption) *SyncServer[ID, S, P] {
	o := serverOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &SyncServer[ID, S, P]{
		state:    initial,
		registry: store.NewClientRegistry[ID, S](),
		metrics:  o.metrics,
		now:      o.now,
		logger:   log,
	}
}

// GetClientDiff answers a client's update request.
//
// If the client is unknown, or the hash it reports differs from the one the
// server recorded for it, the answer is a complete update built from the
// identity state. Otherwise it is a diff from the recorded snapshot. In both
// cases the current state becomes the client's new record.
func (s *SyncServer[ID, S, P]) GetClientDiff(req models.ClientUpdateRequest[ID]) models.ClientUpdate[P] {
	s.mu.RLock()
	snapshot := s.state.Clone()
	s.mu.RUnlock()

	currentHash := snapshot.Fingerprint()

	var (
		base    S
		matched bool
	)
	s.registry.Upsert(req.ID, func(prev store.ClientRecord[S], found bool) store.ClientRecord[S] {
		if found && prev.Fingerprint == req.CurrentHash {
			base, matched = prev.Snapshot, true
		}
		return store.ClientRecord[S]{
			Snapshot:    snapshot,
			Fingerprint: currentHash,
			LastSeen:    s.now(),
		}
	})

	var update models.ClientUpdate[P]
	if matched {
		update = models.NewDiffUpdate(base.Diff(snapshot), currentHash, req.CurrentHash)
	} else {
		update = models.NewCompleteUpdate(snapshot.Identity().Diff(snapshot), currentHash)
	}

	s.metrics.UpdateServed(string(update.Kind), patchLen(update.Patch))
	s.metrics.SetRegisteredClients(s.registry.Len())

	s.logger.Debug().
		Any("client_id", req.ID).
		Str("kind", string(update.Kind)).
		Uint64("new_hash", currentHash).
		Msg("update served")

	return update
}

// ForgetClient drops the record of id and reports whether one existed. The
// next request from id is answered with a complete update.
func (s *SyncServer[ID, S, P]) ForgetClient(id ID) bool {
	found := s.registry.Delete(id)
	if found {
		s.metrics.ClientForgotten("request")
		s.metrics.SetRegisteredClients(s.registry.Len())
	}
	return found
}

// State returns a copy of the authoritative state.
func (s *SyncServer[ID, S, P]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update runs fn with exclusive access to the authoritative state. fn must
// not retain the state after returning.
func (s *SyncServer[ID, S, P]) Update(fn func(S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Replace swaps the authoritative state for next. The server takes
// ownership of next.
func (s *SyncServer[ID, S, P]) Replace(next S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
}

// Fingerprint returns the fingerprint of the authoritative state.
func (s *SyncServer[ID, S, P]) Fingerprint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Fingerprint()
}

// ClientCount returns the number of clients the server has a record for.
func (s *SyncServer[ID, S, P]) ClientCount() int {
	return s.registry.Len()
}

// IdleClients returns the clients that have not made contact for longer
// than olderThan.
func (s *SyncServer[ID, S, P]) IdleClients(olderThan time.Duration) []ID {
	return s.registry.IdleSince(s.now().Add(-olderThan))
}

// EvictIdle forgets every client that has not made contact for longer than
// olderThan and returns their ids.
func (s *SyncServer[ID, S, P]) EvictIdle(olderThan time.Duration) []ID {
	evicted := s.registry.EvictIdle(s.now().Add(-olderThan))
	for range evicted {
		s.metrics.ClientForgotten("idle")
	}
	if len(evicted) > 0 {
		s.metrics.SetRegisteredClients(s.registry.Len())
	}
	return evicted
}

func patchLen(patch any) int {
	if p, ok := patch.(interface{ Len() int }); ok {
		return p.Len()
	}
	return 0
}
