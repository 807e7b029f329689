// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package diff generates and applies [models.Patch] values over keyed
// collections.
//
// Values are compared with == and replaced wholesale: the engine never
// recurses into a value, which keeps patch generation linear in the size of
// both inputs and removes the need for per-value diff implementations.
package diff

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/MKhiriev/go-delta-sync/models"
)

// ErrKeyAlteredAndRemoved is returned by [Validate] when a key appears both
// in the altered and in the removed part of a patch.
var ErrKeyAlteredAndRemoved = errors.New("key is both altered and removed")

// Generate returns the patch that transforms source into target.
//
// It makes two passes:
//   - over source: keys whose value changed are recorded as altered with the
//     target value, keys missing from target are recorded as removed;
//   - over target: keys missing from source are recorded as altered.
//
// Keys with equal values on both sides produce no entry. Values are compared
// with ==, or with [reflect.DeepEqual] when V can hold interface values.
func Generate[K cmp.Ordered, V comparable](source, target map[K]V) models.Patch[K, V] {
	patch := models.NewPatch[K, V]()
	equal := equalFunc[V]()

	// ── Pass 1: keys known to source ───────────────────────────────────────
	for key, value := range source {
		targetValue, existsInTarget := target[key]
		if !existsInTarget {
			patch.Removed = append(patch.Removed, key)
			continue
		}
		if !equal(value, targetValue) {
			patch.Altered[key] = targetValue
		}
	}

	// ── Pass 2: keys only target knows ─────────────────────────────────────
	for key, value := range target {
		if _, existsInSource := source[key]; existsInSource {
			continue
		}
		patch.Altered[key] = value
	}

	slices.Sort(patch.Removed)

	return patch
}

// equalFunc picks the comparison for V. == on an interface panics when the
// dynamic type is not comparable, e.g. a slice stored in a map[string]any.
func equalFunc[V comparable]() func(a, b V) bool {
	if holdsInterface(reflect.TypeFor[V]()) {
		return func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	return func(a, b V) bool { return a == b }
}

func holdsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if holdsInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// Apply mutates state so that it reflects patch: every removed key is
// deleted, then every altered entry is upserted. state must not be nil
// unless patch has no altered entries.
func Apply[K cmp.Ordered, V any](state map[K]V, patch models.Patch[K, V]) {
	for _, key := range patch.Removed {
		delete(state, key)
	}
	for key, value := range patch.Altered {
		state[key] = value
	}
}

// IsEmpty reports whether patch changes nothing.
func IsEmpty[K cmp.Ordered, V any](patch models.Patch[K, V]) bool {
	return len(patch.Altered) == 0 && len(patch.Removed) == 0
}

// Len returns the number of keys touched by patch.
func Len[K cmp.Ordered, V any](patch models.Patch[K, V]) int {
	return len(patch.Altered) + len(patch.Removed)
}

// Validate checks the structural invariant of a patch received from an
// untrusted source: no key may be both altered and removed.
func Validate[K cmp.Ordered, V any](patch models.Patch[K, V]) error {
	for _, key := range patch.Removed {
		if _, altered := patch.Altered[key]; altered {
			return fmt.Errorf("%w: %v", ErrKeyAlteredAndRemoved, key)
		}
	}
	return nil
}
