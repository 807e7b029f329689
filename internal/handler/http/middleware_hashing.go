// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-delta-sync/internal/app"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
)

// withHashing rejects requests whose body does not match the HMAC-SHA256
// signature in the HashSHA256 header. It is a no-op when no hash key is
// configured.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withHashing").Msg("failed to read request body")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		got := r.Header.Get(utils.HashHeader)
		if !utils.VerifyHash(body, got) {
			log.Error().Str("func", "*Handler.withHashing").
				Str("hash from request", got).
				Msg("hashes are not equal")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
