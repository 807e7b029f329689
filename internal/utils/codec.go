// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the gRPC content-subtype served by [JSONCodec]. Clients
// select it with grpc.CallContentSubtype(JSONCodecName).
const JSONCodecName = "json"

// JSONCodec lets gRPC carry the plain Go message structs as JSON, so the
// protocol messages need no generated protobuf types.
type JSONCodec struct{}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return JSONCodecName
}
