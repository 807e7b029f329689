// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoListeners is returned by NewServer when no configured transport
	// has a sync handler to serve.
	errNoListeners = errors.New("no sync transport to listen on")
	// errNotListening is returned by run when the server holds no bound
	// listener.
	errNotListening = errors.New("sync server is not listening")
)
