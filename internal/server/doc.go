// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the transport servers of the sync server.
//
// It owns the HTTP and gRPC lifecycles: listeners are bound at construction,
// serving starts on RunServer and both transports stop gracefully on
// SIGTERM, SIGINT or SIGQUIT.
package server
