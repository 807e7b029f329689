// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-delta-sync/internal/handler/http"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/service"
)

// Transport names reported by [Handlers.Transports].
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Handlers exposes the sync protocol over each transport the server is
// configured for. A nil field means the transport is disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a sync handler for every address set in cfg. Both
// transports share services, so a client may switch between them without
// losing its record. hashKey enables body signature checks on HTTP; gRPC
// relies on the transport instead.
func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.Server, hashKey string, logger *logger.Logger) (*Handlers, error) {
	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, hashKey, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	transports := handlers.Transports()
	if len(transports) == 0 {
		return nil, errNoSyncTransports
	}

	logger.Info().
		Strs("transports", transports).
		Bool("signed_bodies", handlers.HTTP != nil && hashKey != "").
		Msg("sync handlers created")

	return handlers, nil
}

// Transports lists the enabled transports in a fixed order.
func (h *Handlers) Transports() []string {
	var transports []string
	if h.HTTP != nil {
		transports = append(transports, TransportHTTP)
	}
	if h.GRPC != nil {
		transports = append(transports, TransportGRPC)
	}
	return transports
}
