// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the replica process runtime.
//
// It runs the periodic sync job against the server and, on shutdown,
// deregisters the replica so the server can release its snapshot.
package client
