// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"cmp"
	"maps"

	"github.com/MKhiriev/go-delta-sync/internal/diff"
	"github.com/MKhiriev/go-delta-sync/internal/fingerprint"
	"github.com/MKhiriev/go-delta-sync/models"
)

// Map is a plain keyed state. A nil Map is a valid empty state for reading,
// but Apply needs a non-nil map; use Identity to obtain one.
type Map[K cmp.Ordered, V comparable] map[K]V

var _ State[Map[string, string], models.Patch[string, string]] = Map[string, string]{}

// NewMap returns an empty [Map].
func NewMap[K cmp.Ordered, V comparable]() Map[K, V] {
	return make(Map[K, V])
}

// Fingerprint hashes the entries in ascending key order.
func (m Map[K, V]) Fingerprint() uint64 {
	return fingerprint.Entries(m)
}

// Diff returns the patch turning m into target.
func (m Map[K, V]) Diff(target Map[K, V]) models.Patch[K, V] {
	return diff.Generate(m, target)
}

// Apply mutates m in place.
func (m Map[K, V]) Apply(patch models.Patch[K, V]) {
	diff.Apply(m, patch)
}

// Identity returns a new empty map.
func (Map[K, V]) Identity() Map[K, V] {
	return make(Map[K, V])
}

// Clone returns a shallow copy of m. Values are copied by assignment.
func (m Map[K, V]) Clone() Map[K, V] {
	if m == nil {
		return make(Map[K, V])
	}
	return maps.Clone(m)
}

// ValidatePatch rejects patches that alter and remove the same key.
func (Map[K, V]) ValidatePatch(patch models.Patch[K, V]) error {
	return diff.Validate(patch)
}
