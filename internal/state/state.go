// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state defines the capability a replicated state must provide to
// take part in delta synchronization, together with two keyed
// implementations.
package state

// State is the capability required from any replicated state S whose
// patches have type P.
//
// Fingerprint must return equal digests for states that are equal for
// synchronization purposes. Diff returns the patch that transforms the
// receiver into target, and Apply(receiver.Diff(target)) must leave the
// receiver equal to target. Identity returns the empty state and must not
// read its receiver, so it can be called on a zero value. Clone returns an
// independent copy.
type State[S any, P any] interface {
	Fingerprint() uint64
	Diff(target S) P
	Apply(patch P)
	Identity() S
	Clone() S
}

// Validator is implemented by states able to reject a structurally invalid
// patch before it is applied.
type Validator[P any] interface {
	ValidatePatch(patch P) error
}
