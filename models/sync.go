// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UpdateKind is the discriminant of a [ClientUpdate].
type UpdateKind string

const (
	// UpdateComplete marks a full resynchronization: the patch is computed
	// against the identity (empty) state and the client must reset before
	// applying it.
	UpdateComplete UpdateKind = "complete"

	// UpdateDiff marks an incremental update computed against the state the
	// server believes the client currently holds.
	UpdateDiff UpdateKind = "diff"
)

// Valid reports whether k is one of the known update kinds.
func (k UpdateKind) Valid() bool {
	return k == UpdateComplete || k == UpdateDiff
}

// ClientUpdateRequest is sent by a client to ask the server for an update.
// CurrentHash is the fingerprint of the client's replica at request time.
type ClientUpdateRequest[ID comparable] struct {
	ID          ID     `json:"id"`
	CurrentHash uint64 `json:"current_hash,string"`
}

// ClientUpdate is the server's answer to a [ClientUpdateRequest].
//
// It is a tagged union: Kind selects between a complete update
// (Patch computed from the identity state, OldHash unused) and an incremental
// diff (Patch computed from the client's last known state, OldHash set to the
// fingerprint the patch must be applied on). Values are built with
// [NewCompleteUpdate] and [NewDiffUpdate].
type ClientUpdate[P any] struct {
	Kind    UpdateKind `json:"kind"`
	Patch   P          `json:"patch"`
	NewHash uint64     `json:"new_hash,string"`
	OldHash uint64     `json:"old_hash,omitempty,string"`
}

// NewCompleteUpdate builds a complete update carrying the patch from the
// identity state to the current state.
func NewCompleteUpdate[P any](patchFromIdentity P, newHash uint64) ClientUpdate[P] {
	return ClientUpdate[P]{
		Kind:    UpdateComplete,
		Patch:   patchFromIdentity,
		NewHash: newHash,
	}
}

// NewDiffUpdate builds an incremental update that is valid only on a replica
// whose fingerprint equals oldHash.
func NewDiffUpdate[P any](patch P, newHash, oldHash uint64) ClientUpdate[P] {
	return ClientUpdate[P]{
		Kind:    UpdateDiff,
		Patch:   patch,
		NewHash: newHash,
		OldHash: oldHash,
	}
}

// IsComplete reports whether u is a complete update.
func (u ClientUpdate[P]) IsComplete() bool {
	return u.Kind == UpdateComplete
}

// IsDiff reports whether u is an incremental update.
func (u ClientUpdate[P]) IsDiff() bool {
	return u.Kind == UpdateDiff
}
