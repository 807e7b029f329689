// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyClientID   = errors.New("client id is required")
	ErrInvalidClientID = errors.New("invalid client id")
	ErrEmptyKey        = errors.New("state key is required")
	ErrInvalidKey      = errors.New("invalid state key")
	ErrValueTooLong    = errors.New("state value is too long")
)
