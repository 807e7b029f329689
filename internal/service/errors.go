// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidUpdateStartState is returned when a diff update was computed
	// against a state the replica no longer holds. The replica is left
	// untouched and the next request is answered with a complete update.
	ErrInvalidUpdateStartState = errors.New("update start state does not match replica")

	// ErrHashResultDiff is returned when applying an update produced a state
	// whose fingerprint differs from the one announced by the server.
	ErrHashResultDiff = errors.New("fingerprint after update differs from announced one")

	// ErrMalformedUpdate is returned for updates with an unknown kind or a
	// structurally invalid patch.
	ErrMalformedUpdate = errors.New("malformed update")

	ErrKeyNotFound       = errors.New("state key not found")
	ErrNoStateRepository = errors.New("no state repository configured")
)
