// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the sync server.
//
// It wires the chi router, the handlers of the sync protocol and of the
// state admin endpoints, and the middleware chain: request tracing, access
// logging, gzip compression and HMAC integrity checks. Requests are
// delegated to the service layer.
package http
