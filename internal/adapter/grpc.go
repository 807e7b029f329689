// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type grpcServerAdapter struct {
	conn    *grpc.ClientConn
	timeout time.Duration

	logger *logger.Logger
}

// NewGRPCServerAdapter constructs a gRPC implementation of [ServerAdapter]
// dialing adapterCfg.GRPCAddress. Extra dial options are appended to the
// defaults (plaintext transport, JSON content-subtype).
func NewGRPCServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger, opts ...grpc.DialOption) (ServerAdapter, error) {
	target := strings.TrimSpace(adapterCfg.GRPCAddress)
	if target == "" {
		return nil, fmt.Errorf("invalid adapter grpc address: %w", ErrEmptyAddress)
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(utils.JSONCodecName)),
	}, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client for %s: %w", target, err)
	}

	return &grpcServerAdapter{conn: conn, timeout: adapterCfg.RequestTimeout, logger: logger}, nil
}

// RequestUpdate implements [ServerAdapter] through the GetClientDiff method.
func (g *grpcServerAdapter) RequestUpdate(ctx context.Context, req models.KVUpdateRequest) (models.KVUpdate, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	var update models.KVUpdate
	if err := g.conn.Invoke(ctx, models.GRPCGetClientDiffMethod, &req, &update); err != nil {
		return models.KVUpdate{}, fmt.Errorf("get client diff: %w", mapGRPCError(err))
	}

	g.logger.Debug().Str("func", "*grpcServerAdapter.RequestUpdate").
		Str("kind", string(update.Kind)).
		Int("entries", update.Patch.Len()).
		Msg("update received")

	return update, nil
}

// ForgetClient implements [ServerAdapter] through the ForgetClient method.
func (g *grpcServerAdapter) ForgetClient(ctx context.Context, id string) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.conn.Invoke(ctx, models.GRPCForgetClientMethod, &models.ForgetClientRequest{ID: id}, &models.Empty{}); err != nil {
		return fmt.Errorf("forget client: %w", mapGRPCError(err))
	}
	return nil
}

// Close implements [ServerAdapter].
func (g *grpcServerAdapter) Close() error {
	return g.conn.Close()
}

func (g *grpcServerAdapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}
