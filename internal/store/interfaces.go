// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-delta-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// StateRepository persists the server's authoritative key-value state.
type StateRepository interface {
	// Load returns every persisted entry.
	Load(ctx context.Context) (map[string]string, error)
	// ApplyPatch stores patch atomically: either every removal and upsert
	// is applied or none is.
	ApplyPatch(ctx context.Context, patch models.KVPatch) error
	// Classify tells whether a failed operation may succeed if retried.
	Classify(err error) ErrorClassification
}

// ErrorClassificator decides whether a driver error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
