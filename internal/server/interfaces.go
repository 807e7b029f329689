// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server is the lifecycle contract of the transport servers.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives.
	RunServer()

	// Shutdown gracefully stops serving.
	Shutdown()
}
