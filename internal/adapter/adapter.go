// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
)

// NewServerAdapter picks the transport from the config: gRPC when a gRPC
// address is set, HTTP otherwise.
func NewServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	if adapterCfg.GRPCAddress != "" {
		logger.Info().Str("address", adapterCfg.GRPCAddress).Msg("using gRPC transport")
		return NewGRPCServerAdapter(adapterCfg, logger)
	}

	logger.Info().Str("address", adapterCfg.HTTPAddress).Msg("using HTTP transport")
	return NewHTTPServerAdapter(adapterCfg, appCfg, logger)
}
