// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// ClientRecord is what the server remembers about one client after its last
// request: the state it was sent, the fingerprint of that state, and when.
type ClientRecord[S any] struct {
	Snapshot    S
	Fingerprint uint64
	LastSeen    time.Time
}

// ClientRegistry maps client ids to their [ClientRecord]. It is sharded, so
// operations on distinct ids do not contend on a global lock, and
// [ClientRegistry.Upsert] is atomic per id.
type ClientRegistry[ID comparable, S any] struct {
	records *xsync.MapOf[ID, ClientRecord[S]]
}

// NewClientRegistry returns an empty registry.
func NewClientRegistry[ID comparable, S any]() *ClientRegistry[ID, S] {
	return &ClientRegistry[ID, S]{records: xsync.NewMapOf[ID, ClientRecord[S]]()}
}

// Get returns the record of id.
func (r *ClientRegistry[ID, S]) Get(id ID) (ClientRecord[S], bool) {
	return r.records.Load(id)
}

// Upsert replaces the record of id with the result of fn. fn receives the
// previous record, if any, and runs while the entry is locked: concurrent
// Upsert calls for the same id are serialized and observe each other's
// results. fn must not call back into the registry.
func (r *ClientRegistry[ID, S]) Upsert(id ID, fn func(prev ClientRecord[S], found bool) ClientRecord[S]) {
	r.records.Compute(id, func(old ClientRecord[S], loaded bool) (ClientRecord[S], bool) {
		return fn(old, loaded), false
	})
}

// Delete removes id and reports whether it was present.
func (r *ClientRegistry[ID, S]) Delete(id ID) bool {
	_, ok := r.records.LoadAndDelete(id)
	return ok
}

// Len returns the number of registered clients.
func (r *ClientRegistry[ID, S]) Len() int {
	return r.records.Size()
}

// IdleSince returns the ids whose last contact happened before cutoff.
func (r *ClientRegistry[ID, S]) IdleSince(cutoff time.Time) []ID {
	var ids []ID
	r.records.Range(func(id ID, rec ClientRecord[S]) bool {
		if rec.LastSeen.Before(cutoff) {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// EvictIdle removes every client whose last contact happened before cutoff
// and returns the removed ids. A client that makes contact while eviction is
// running is kept.
func (r *ClientRegistry[ID, S]) EvictIdle(cutoff time.Time) []ID {
	var evicted []ID
	for _, id := range r.IdleSince(cutoff) {
		r.records.Compute(id, func(old ClientRecord[S], loaded bool) (ClientRecord[S], bool) {
			if !loaded {
				return old, true
			}
			if old.LastSeen.Before(cutoff) {
				evicted = append(evicted, id)
				return old, true
			}
			return old, false
		})
	}
	return evicted
}
