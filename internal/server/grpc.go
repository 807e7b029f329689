// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"fmt"
	"net"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-delta-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-delta-sync/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("grpc listen on %s: %w", cfg.GRPCAddress, err)
	}

	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(handler.UnaryInterceptors()...)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, grpc.ConnectionTimeout(cfg.RequestTimeout))
	}

	server := grpc.NewServer(opts...)
	myGRPC.RegisterSyncServer(server, handler)

	return &grpcServer{
		server:   server,
		listener: lis,
		logger:   logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.listener); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
