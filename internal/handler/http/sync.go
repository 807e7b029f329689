// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-delta-sync/internal/app"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getClientDiff(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.KVUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.getClientDiff").Msg("invalid sync request body")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	update, err := h.services.SyncService.GetClientDiff(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getClientDiff").Str("client_id", req.ID).Msg("sync request failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, update, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getClientDiff").Msg("error writing update")
	}
}

func (h *Handler) forgetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.services.SyncService.ForgetClient(r.Context(), id); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.forgetClient").Str("client_id", id).Msg("forget client failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
