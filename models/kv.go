// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// The shipped server and client replicate a string keyed, string valued
// store. The aliases below are the concrete message shapes exchanged by the
// HTTP and gRPC transports.
type (
	// KVPatch is a [Patch] over the key-value store.
	KVPatch = Patch[string, string]

	// KVUpdateRequest is a [ClientUpdateRequest] identified by a string
	// client id.
	KVUpdateRequest = ClientUpdateRequest[string]

	// KVUpdate is a [ClientUpdate] carrying a [KVPatch].
	KVUpdate = ClientUpdate[KVPatch]
)
