// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-delta-sync/internal/logger"

// Repositories aggregates the SQL-backed repositories of the server.
type Repositories struct {
	State StateRepository
}

// NewRepositories builds every repository on top of db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		State: NewStateRepository(db, log),
	}
}
