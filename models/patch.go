// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "cmp"

// Patch is the minimal set of key upserts and key deletions that transforms
// one keyed state into another.
//
// A key never appears in both Altered and Removed. Removed is kept sorted in
// ascending key order and free of duplicates so that the set has a single
// canonical encoding on the wire.
type Patch[K cmp.Ordered, V any] struct {
	// Altered holds every inserted or updated key together with its new value.
	Altered map[K]V `json:"altered"`

	// Removed holds every key that must be deleted.
	Removed []K `json:"removed"`
}

// NewPatch returns an empty, ready to fill [Patch].
func NewPatch[K cmp.Ordered, V any]() Patch[K, V] {
	return Patch[K, V]{
		Altered: make(map[K]V),
		Removed: make([]K, 0),
	}
}

// Len returns the number of keys touched by p.
func (p Patch[K, V]) Len() int {
	return len(p.Altered) + len(p.Removed)
}
