// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-delta-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldClientID targets the id a client registers under.
	FieldClientID = "client_id"

	// FieldKey targets the key of a state entry.
	FieldKey = "key"

	// FieldValue targets the value of a state entry.
	FieldValue = "value"
)

// Limits applied to identifiers and values received over the wire.
const (
	MaxClientIDLength = 128
	MaxKeyLength      = 256
	MaxValueLength    = 1 << 20
)

// SyncValidator implements [Validator] for the messages of the sync API:
// update requests, forget requests and state entries.
type SyncValidator struct{}

// NewSyncValidator constructs a [SyncValidator] and returns it as the
// [Validator] interface.
func NewSyncValidator() Validator {
	return &SyncValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
//
// Supported types:
//   - models.KVUpdateRequest
//   - models.ForgetClientRequest
//   - models.StateEntry
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.KVUpdateRequest:
		return v.validateClientID(value.ID, fields...)
	case *models.KVUpdateRequest:
		return v.validateClientID(value.ID, fields...)

	case models.ForgetClientRequest:
		return v.validateClientID(value.ID, fields...)
	case *models.ForgetClientRequest:
		return v.validateClientID(value.ID, fields...)

	case models.StateEntry:
		return v.validateStateEntry(value, fields...)
	case *models.StateEntry:
		return v.validateStateEntry(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateClientID(id string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientID}
	}

	for _, f := range fields {
		switch f {
		case FieldClientID:
			if id == "" {
				return ErrEmptyClientID
			}
			if len(id) > MaxClientIDLength || !isPrintable(id) {
				return ErrInvalidClientID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateStateEntry checks a state entry. Default fields: key, value.
func (v *SyncValidator) validateStateEntry(entry models.StateEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKey, FieldValue}
	}

	for _, f := range fields {
		switch f {
		case FieldKey:
			if entry.Key == "" {
				return ErrEmptyKey
			}
			if len(entry.Key) > MaxKeyLength || !isPrintable(entry.Key) {
				return ErrInvalidKey
			}
		case FieldValue:
			if len(entry.Value) > MaxValueLength {
				return ErrValueTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isPrintable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
