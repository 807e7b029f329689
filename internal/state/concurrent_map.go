// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"cmp"

	"github.com/MKhiriev/go-delta-sync/internal/diff"
	"github.com/MKhiriev/go-delta-sync/internal/fingerprint"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/puzpuzpuz/xsync/v3"
)

// ConcurrentMap is a keyed state backed by a sharded concurrent map. Single
// entries may be read and written from many goroutines; Fingerprint, Diff
// and Clone work on an ordered snapshot and are not atomic with respect to
// concurrent writers.
type ConcurrentMap[K cmp.Ordered, V comparable] struct {
	entries *xsync.MapOf[K, V]
}

var _ State[*ConcurrentMap[string, string], models.Patch[string, string]] = (*ConcurrentMap[string, string])(nil)

// NewConcurrentMap returns an empty [ConcurrentMap].
func NewConcurrentMap[K cmp.Ordered, V comparable]() *ConcurrentMap[K, V] {
	return &ConcurrentMap[K, V]{entries: xsync.NewMapOf[K, V]()}
}

// ConcurrentMapFrom returns a [ConcurrentMap] holding a copy of m.
func ConcurrentMapFrom[K cmp.Ordered, V comparable](m map[K]V) *ConcurrentMap[K, V] {
	c := &ConcurrentMap[K, V]{entries: xsync.NewMapOf[K, V](xsync.WithPresize(len(m)))}
	for k, v := range m {
		c.entries.Store(k, v)
	}
	return c
}

// Load returns the value stored under key.
func (c *ConcurrentMap[K, V]) Load(key K) (V, bool) {
	return c.entries.Load(key)
}

// Store sets the value for key.
func (c *ConcurrentMap[K, V]) Store(key K, value V) {
	c.entries.Store(key, value)
}

// Delete removes key.
func (c *ConcurrentMap[K, V]) Delete(key K) {
	c.entries.Delete(key)
}

// Len returns the number of entries.
func (c *ConcurrentMap[K, V]) Len() int {
	return c.entries.Size()
}

// Snapshot copies the current entries into a plain map.
func (c *ConcurrentMap[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, c.entries.Size())
	c.entries.Range(func(k K, v V) bool {
		out[k] = v
		return true
	})
	return out
}

func (c *ConcurrentMap[K, V]) Fingerprint() uint64 {
	return fingerprint.Entries(c.Snapshot())
}

func (c *ConcurrentMap[K, V]) Diff(target *ConcurrentMap[K, V]) models.Patch[K, V] {
	return diff.Generate(c.Snapshot(), target.Snapshot())
}

func (c *ConcurrentMap[K, V]) Apply(patch models.Patch[K, V]) {
	for _, key := range patch.Removed {
		c.entries.Delete(key)
	}
	for key, value := range patch.Altered {
		c.entries.Store(key, value)
	}
}

// Identity returns a new empty map. The receiver may be nil.
func (*ConcurrentMap[K, V]) Identity() *ConcurrentMap[K, V] {
	return NewConcurrentMap[K, V]()
}

func (c *ConcurrentMap[K, V]) Clone() *ConcurrentMap[K, V] {
	return ConcurrentMapFrom(c.Snapshot())
}

func (*ConcurrentMap[K, V]) ValidatePatch(patch models.Patch[K, V]) error {
	return diff.Validate(patch)
}
