// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a periodic Ticker worker and a Workers
// aggregate that starts and stops several workers in a unified way.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: it launches the job and returns. The job runs until
// ctx is cancelled or Stop is called. Stop blocks until the job has fully
// exited and is safe to call on a worker that was never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
