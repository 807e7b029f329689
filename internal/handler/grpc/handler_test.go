// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/adapter"
	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type testEnv struct {
	services *service.Services
	adapter  adapter.ServerAdapter
	conn     *grpc.ClientConn
}

func newTestEnv(t *testing.T, initial map[string]string) *testEnv {
	t.Helper()

	services := service.NewServices(initial, nil, config.StructuredConfig{}, models.NewAppBuildInfo("", "", ""), nil, logger.Nop())
	h := NewHandler(services, logger.Nop())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(h.UnaryInterceptors()...))
	RegisterSyncServer(srv, h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})

	a, err := adapter.NewGRPCServerAdapter(config.ClientAdapter{GRPCAddress: "passthrough:///bufnet"}, logger.Nop(), dialer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	conn, err := grpc.NewClient("passthrough:///bufnet", dialer,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(utils.JSONCodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{services: services, adapter: a, conn: conn}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGetClientDiff_RoundTrip(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1": "A", "2": "B"})
	ctx := testContext(t)

	first, err := env.adapter.RequestUpdate(ctx, models.KVUpdateRequest{ID: "c-1"})
	require.NoError(t, err)
	require.True(t, first.IsComplete())
	assert.Equal(t, map[string]string{"1": "A", "2": "B"}, first.Patch.Altered)

	require.NoError(t, env.services.StateService.SetValue(ctx, models.StateEntry{Key: "3", Value: "C"}))

	second, err := env.adapter.RequestUpdate(ctx, models.KVUpdateRequest{ID: "c-1", CurrentHash: first.NewHash})
	require.NoError(t, err)
	require.True(t, second.IsDiff())
	assert.Equal(t, first.NewHash, second.OldHash)
	assert.Equal(t, map[string]string{"3": "C"}, second.Patch.Altered)
	assert.Equal(t, env.services.Server.Fingerprint(), second.NewHash)
}

func TestGetClientDiff_InvalidArgument(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.adapter.RequestUpdate(testContext(t), models.KVUpdateRequest{ID: ""})

	assert.ErrorIs(t, err, adapter.ErrBadRequest)
}

func TestForgetClient(t *testing.T) {
	env := newTestEnv(t, map[string]string{"k": "v"})
	ctx := testContext(t)

	_, err := env.adapter.RequestUpdate(ctx, models.KVUpdateRequest{ID: "c-1"})
	require.NoError(t, err)
	require.Equal(t, 1, env.services.Server.ClientCount())

	require.NoError(t, env.adapter.ForgetClient(ctx, "c-1"))
	assert.Zero(t, env.services.Server.ClientCount())
}

func TestTraceIDMetadata(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := metadata.AppendToOutgoingContext(testContext(t), TraceIDMetadataKey, "trace-1")

	var header metadata.MD
	err := env.conn.Invoke(ctx, models.GRPCForgetClientMethod, &models.ForgetClientRequest{ID: "c-1"}, &models.Empty{}, grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{"trace-1"}, header.Get(TraceIDMetadataKey))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, status.Code(statusFromError(service.ErrMalformedUpdate)))
	assert.Equal(t, codes.NotFound, status.Code(statusFromError(service.ErrKeyNotFound)))
	assert.Equal(t, codes.Internal, status.Code(statusFromError(errors.New("boom"))))
}
