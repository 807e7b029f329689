// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transports of the sync protocol.
//
// [ServerAdapter] decouples the replica from the protocol used to reach the
// server. Two implementations ship: HTTP/REST over resty
// ([NewHTTPServerAdapter]) and gRPC with a JSON codec
// ([NewGRPCServerAdapter]).
//
// Transport failures are mapped onto the sentinel values in errors.go
// (e.g. [ErrBadRequest] for HTTP 400 or codes.InvalidArgument) so that
// callers can use [errors.Is] without knowing the protocol.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-delta-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter carries protocol messages between a replica and the server.
type ServerAdapter interface {
	// RequestUpdate sends the replica's update request and returns the
	// server's answer, either a complete update or a diff.
	RequestUpdate(ctx context.Context, req models.KVUpdateRequest) (models.KVUpdate, error)

	// ForgetClient asks the server to drop its record of the client id,
	// e.g. when a replica shuts down for good.
	ForgetClient(ctx context.Context, id string) error

	// Close releases the underlying connection.
	Close() error
}
