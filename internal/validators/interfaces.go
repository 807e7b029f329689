// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the inputs that reach the sync server from the
// outside: client ids in sync and forget requests, and the key/value
// entries written through the state endpoints.
package validators

import "context"

// Validator validates obj. When fields are given only those fields are
// checked; an unknown field name is an error.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
