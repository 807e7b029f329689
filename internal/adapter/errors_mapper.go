// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// httpStatusErrors maps the statuses the sync endpoints answer with. A 400
// covers malformed update requests and failed body signatures, a 404 an
// unknown state key.
var httpStatusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrUnavailable,
	http.StatusGatewayTimeout:      ErrUnavailable,
}

// grpcCodeErrors is the gRPC counterpart of httpStatusErrors, so a sync
// round trip fails with the same sentinel over either transport.
var grpcCodeErrors = map[codes.Code]error{
	codes.InvalidArgument:  ErrBadRequest,
	codes.Unauthenticated:  ErrUnauthorized,
	codes.PermissionDenied: ErrForbidden,
	codes.NotFound:         ErrNotFound,
	codes.AlreadyExists:    ErrConflict,
	codes.Aborted:          ErrConflict,
	codes.Internal:         ErrInternalServerError,
	codes.Unknown:          ErrInternalServerError,
	codes.Unavailable:      ErrUnavailable,
	codes.DeadlineExceeded: ErrUnavailable,
}

// mapHTTPError returns nil for a 2xx answer from the sync server. Any other
// status becomes a sentinel from httpStatusErrors carrying the response body;
// unknown statuses keep their code.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	detail := strings.TrimSpace(string(resp.Body()))
	if sentinel, ok := httpStatusErrors[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}

	if detail == "" {
		detail = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, detail)
}

// mapGRPCError translates a status returned by the sync service. Errors that
// carry no status, or a code outside grpcCodeErrors, are returned as is.
func mapGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	if sentinel, ok := grpcCodeErrors[st.Code()]; ok {
		return fmt.Errorf("%w: %s", sentinel, st.Message())
	}
	return err
}
