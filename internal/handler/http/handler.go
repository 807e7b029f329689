// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// hashKey enables request signature checks when set.
	hashKey string
	traceID *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	if hashKey != "" {
		utils.InitHasherPool(hashKey)
	}
	return &Handler{
		services: services,
		metrics:  m,
		hashKey:  hashKey,
		traceID:  utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
