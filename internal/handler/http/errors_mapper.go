// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrUnsupportedType: http.StatusBadRequest,
	validators.ErrEmptyClientID:   http.StatusBadRequest,
	validators.ErrInvalidClientID: http.StatusBadRequest,
	validators.ErrEmptyKey:        http.StatusBadRequest,
	validators.ErrInvalidKey:      http.StatusBadRequest,
	validators.ErrValueTooLong:    http.StatusRequestEntityTooLarge,

	service.ErrMalformedUpdate: http.StatusBadRequest,
	service.ErrKeyNotFound:     http.StatusNotFound,
}

// statusFromError maps a service error to its HTTP status. Unknown errors,
// storage failures included, become 500.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
