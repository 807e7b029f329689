// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StateResponse describes the server's authoritative state as returned by
// GET /api/state.
type StateResponse struct {
	// Fingerprint is the fingerprint of Entries at the time of the read.
	Fingerprint uint64 `json:"fingerprint,string"`

	// Entries is a consistent copy of the authoritative key-value state.
	Entries map[string]string `json:"entries"`

	// Clients is the number of clients currently tracked by the registry.
	Clients int `json:"clients"`
}

// SetValueRequest is the body of PUT /api/state/{key}.
type SetValueRequest struct {
	Value string `json:"value"`
}

// StateEntry is a single key-value pair of the authoritative state. Handlers
// build it from the URL key and the request body before validation.
type StateEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ForgetClientRequest asks the server to drop everything it remembers about
// a client. It is used by the gRPC transport; the HTTP transport carries the
// id in the URL.
type ForgetClientRequest struct {
	ID string `json:"id"`
}

// Empty is an empty message body.
type Empty struct{}

// gRPC names of the sync service. Messages are the same structs as on the
// HTTP API, encoded with the JSON codec.
const (
	GRPCSyncService         = "deltasync.v1.Sync"
	GRPCGetClientDiffMethod = "/" + GRPCSyncService + "/GetClientDiff"
	GRPCForgetClientMethod  = "/" + GRPCSyncService + "/ForgetClient"
)
