// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable messages written into HTTP error
// bodies by the server's transport layer.
package app

const (
	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgInvalidGzipData is returned for a gzip-encoded body that cannot be
	// decompressed.
	MsgInvalidGzipData = "invalid gzip data"

	MsgInternalServerError = "internal server error"
)
