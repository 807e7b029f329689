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

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	state := h.services.StateService.GetState(r.Context())

	if _, err := utils.WriteJSON(w, state, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getState").Msg("error writing state")
	}
}

func (h *Handler) setValue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SetValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setValue").Msg("invalid set value body")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	entry := models.StateEntry{Key: chi.URLParam(r, "key"), Value: req.Value}
	if err := h.services.StateService.SetValue(r.Context(), entry); err != nil {
		log.Err(err).Str("func", "*Handler.setValue").Str("key", entry.Key).Msg("set value failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteValue(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.services.StateService.DeleteValue(r.Context(), key); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteValue").Str("key", key).Msg("delete value failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
