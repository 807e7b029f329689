// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"errors"

	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/validators"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodeMap = map[error]codes.Code{
	validators.ErrUnsupportedType: codes.InvalidArgument,
	validators.ErrEmptyClientID:   codes.InvalidArgument,
	validators.ErrInvalidClientID: codes.InvalidArgument,
	validators.ErrEmptyKey:        codes.InvalidArgument,
	validators.ErrInvalidKey:      codes.InvalidArgument,
	validators.ErrValueTooLong:    codes.InvalidArgument,

	service.ErrMalformedUpdate: codes.InvalidArgument,
	service.ErrKeyNotFound:     codes.NotFound,
}

// statusFromError converts a service error into a status error.
func statusFromError(err error) error {
	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return status.Error(code, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}
