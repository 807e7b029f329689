// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// View is a foreground presentation of the replica. Run blocks until the
// user leaves the view or ctx is done.
type View interface {
	Run(ctx context.Context) error
}
