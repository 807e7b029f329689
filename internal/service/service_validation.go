// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-delta-sync/internal/validators"
	"github.com/MKhiriev/go-delta-sync/models"
)

// SyncValidationService rejects malformed client ids before they reach
// the registry.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService() SyncServiceWrapper {
	return &SyncValidationService{validator: validators.NewSyncValidator()}
}

func (v *SyncValidationService) GetClientDiff(ctx context.Context, req models.KVUpdateRequest) (models.KVUpdate, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.KVUpdate{}, fmt.Errorf("update request validation: %w", err)
	}
	return v.inner.GetClientDiff(ctx, req)
}

func (v *SyncValidationService) ForgetClient(ctx context.Context, id string) error {
	if err := v.validator.Validate(ctx, models.ForgetClientRequest{ID: id}); err != nil {
		return fmt.Errorf("forget request validation: %w", err)
	}
	return v.inner.ForgetClient(ctx, id)
}

func (v *SyncValidationService) Wrap(inner SyncService) SyncService {
	v.inner = inner
	return v
}

// StateValidationService checks keys and values of state mutations.
type StateValidationService struct {
	inner     StateService
	validator validators.Validator
}

func NewStateValidationService() StateServiceWrapper {
	return &StateValidationService{validator: validators.NewSyncValidator()}
}

func (v *StateValidationService) GetState(ctx context.Context) models.StateResponse {
	return v.inner.GetState(ctx)
}

func (v *StateValidationService) SetValue(ctx context.Context, entry models.StateEntry) error {
	if err := v.validator.Validate(ctx, entry); err != nil {
		return fmt.Errorf("state entry validation: %w", err)
	}
	return v.inner.SetValue(ctx, entry)
}

func (v *StateValidationService) DeleteValue(ctx context.Context, key string) error {
	if err := v.validator.Validate(ctx, models.StateEntry{Key: key}, validators.FieldKey); err != nil {
		return fmt.Errorf("state key validation: %w", err)
	}
	return v.inner.DeleteValue(ctx, key)
}

func (v *StateValidationService) Wrap(inner StateService) StateService {
	v.inner = inner
	return v
}
