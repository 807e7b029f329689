// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoSyncTransports is returned by NewHandlers when the server config
// names neither an HTTP nor a gRPC address.
var errNoSyncTransports = errors.New("no sync transport configured")
