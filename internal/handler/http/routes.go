// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// sync protocol
		r.With(h.withHashing).Post("/api/sync", h.getClientDiff)
		r.Delete("/api/clients/{id}", h.forgetClient)

		// authoritative state
		r.Get("/api/state", h.getState)
		r.With(h.withHashing).Put("/api/state/{key}", h.setValue)
		r.Delete("/api/state/{key}", h.deleteValue)

		r.Get("/api/version", h.getServerVersion)
	})

	// promhttp negotiates its own compression
	router.Handle("/metrics", h.metrics.Handler())

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
