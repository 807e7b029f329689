// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc implements the gRPC transport of the sync server.
//
// Messages are the plain structs of the models package carried by the JSON
// codec registered in utils, so the service descriptor is written by hand
// instead of being generated from protobuf definitions.
package grpc

import (
	"context"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
)

// Handler is the root gRPC transport handler. It implements [SyncServer]
// by delegating to the service layer.
type Handler struct {
	services *service.Services
	traceID  *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler constructs a [Handler] around services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		traceID:  utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// GetClientDiff implements [SyncServer].
func (h *Handler) GetClientDiff(ctx context.Context, req *models.KVUpdateRequest) (*models.KVUpdate, error) {
	update, err := h.services.SyncService.GetClientDiff(ctx, *req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.GetClientDiff").Str("client_id", req.ID).Msg("sync request failed")
		return nil, statusFromError(err)
	}
	return &update, nil
}

// ForgetClient implements [SyncServer].
func (h *Handler) ForgetClient(ctx context.Context, req *models.ForgetClientRequest) (*models.Empty, error) {
	if err := h.services.SyncService.ForgetClient(ctx, req.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Handler.ForgetClient").Str("client_id", req.ID).Msg("forget client failed")
		return nil, statusFromError(err)
	}
	return &models.Empty{}, nil
}
