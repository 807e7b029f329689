// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-delta-sync/internal/state"
	"github.com/MKhiriev/go-delta-sync/models"
)

// SyncClient holds one replica of the server's state.
//
// A replica starts from the identity state. Updates are applied to a
// working copy that replaces the replica only once its fingerprint has been
// verified, so a rejected update never leaves the replica half applied.
type SyncClient[ID comparable, S state.State[S, P], P any] struct {
	id ID

	mu      sync.RWMutex
	replica S
	hash    uint64
}

// NewSyncClient returns a client identified by id holding the identity
// state.
func NewSyncClient[ID comparable, S state.State[S, P], P any](id ID) *SyncClient[ID, S, P] {
	var zero S
	replica := zero.Identity()
	return &SyncClient[ID, S, P]{
		id:      id,
		replica: replica,
		hash:    replica.Fingerprint(),
	}
}

// ID returns the client's id.
func (c *SyncClient[ID, S, P]) ID() ID {
	return c.id
}

// State returns a copy of the replica.
func (c *SyncClient[ID, S, P]) State() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.replica.Clone()
}

// Fingerprint returns the fingerprint of the replica.
func (c *SyncClient[ID, S, P]) Fingerprint() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hash
}

// UpdateRequest builds the request announcing the replica's fingerprint.
func (c *SyncClient[ID, S, P]) UpdateRequest() models.ClientUpdateRequest[ID] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.ClientUpdateRequest[ID]{ID: c.id, CurrentHash: c.hash}
}

// ApplyUpdate applies an update received from the server.
//
// A complete update resets the replica to the identity state before the
// patch is applied. A diff update is accepted only if the replica's
// fingerprint equals the update's old hash; otherwise
// [ErrInvalidUpdateStartState] is returned. If the resulting fingerprint is
// not the announced new hash, [ErrHashResultDiff] is returned. The replica
// is changed only when nil is returned.
func (c *SyncClient[ID, S, P]) ApplyUpdate(update models.ClientUpdate[P]) error {
	if !update.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedUpdate, update.Kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := any(c.replica).(state.Validator[P]); ok {
		if err := v.ValidatePatch(update.Patch); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedUpdate, err)
		}
	}

	var working S
	switch update.Kind {
	case models.UpdateComplete:
		working = c.replica.Identity()
	case models.UpdateDiff:
		if c.hash != update.OldHash {
			return fmt.Errorf("%w: replica at %d, update expects %d", ErrInvalidUpdateStartState, c.hash, update.OldHash)
		}
		working = c.replica.Clone()
	}

	working.Apply(update.Patch)

	got := working.Fingerprint()
	if got != update.NewHash {
		return fmt.Errorf("%w: got %d, want %d", ErrHashResultDiff, got, update.NewHash)
	}

	c.replica, c.hash = working, got
	return nil
}
