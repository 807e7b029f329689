// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-delta-sync/models"
	"google.golang.org/grpc"
)

// SyncServer is the server API of the deltasync.v1.Sync service.
type SyncServer interface {
	GetClientDiff(context.Context, *models.KVUpdateRequest) (*models.KVUpdate, error)
	ForgetClient(context.Context, *models.ForgetClientRequest) (*models.Empty, error)
}

// SyncServiceDesc describes the deltasync.v1.Sync service for
// [grpc.ServiceRegistrar.RegisterService].
var SyncServiceDesc = grpc.ServiceDesc{
	ServiceName: models.GRPCSyncService,
	HandlerType: (*SyncServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetClientDiff", Handler: getClientDiffHandler},
		{MethodName: "ForgetClient", Handler: forgetClientHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "deltasync/v1/sync",
}

// RegisterSyncServer registers srv on s.
func RegisterSyncServer(s grpc.ServiceRegistrar, srv SyncServer) {
	s.RegisterService(&SyncServiceDesc, srv)
}

func getClientDiffHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.KVUpdateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServer).GetClientDiff(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: models.GRPCGetClientDiffMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServer).GetClientDiff(ctx, req.(*models.KVUpdateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func forgetClientHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.ForgetClientRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SyncServer).ForgetClient(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: models.GRPCForgetClientMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SyncServer).ForgetClient(ctx, req.(*models.ForgetClientRequest))
	}
	return interceptor(ctx, in, info, handler)
}
