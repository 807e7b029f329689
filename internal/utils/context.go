// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the transports: context keys,
// HMAC hashing, JSON response writing, the resty client wrapper, the gRPC
// JSON codec and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so values stored by this
// package cannot collide with string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey stores the trace id assigned to an incoming request.
var TraceIDCtxKey = contextKey("traceID")

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace id stored in ctx. ok is false when
// no trace id is present.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
