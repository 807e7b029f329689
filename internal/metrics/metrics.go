// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the reconciliation
// protocol. Every method is safe to call on a nil *Metrics, which records
// nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deltasync"

// Sync outcomes recorded on the client side.
const (
	ResultOK                = "ok"
	ResultInvalidStartState = "invalid_start_state"
	ResultHashMismatch      = "hash_mismatch"
	ResultMalformed         = "malformed"
	ResultTransport         = "transport"
)

// Metrics groups the collectors of one process on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	updatesServed     *prometheus.CounterVec
	patchEntries      *prometheus.HistogramVec
	clientsForgotten  *prometheus.CounterVec
	registeredClients prometheus.Gauge
	syncResults       *prometheus.CounterVec
	persistedPatches  prometheus.Counter
	persistFailures   *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		updatesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "updates_served_total",
			Help:      "Updates returned to clients by kind.",
		}, []string{"kind"}),
		patchEntries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "patch_entries",
			Help:      "Number of keys touched by a served patch.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		}, []string{"kind"}),
		clientsForgotten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "clients_forgotten_total",
			Help:      "Client records removed from the registry by reason.",
		}, []string{"reason"}),
		registeredClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "registered_clients",
			Help:      "Clients currently tracked by the registry.",
		}),
		syncResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "sync_results_total",
			Help:      "Outcomes of client sync round trips.",
		}, []string{"result"}),
		persistedPatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persisted_patches_total",
			Help:      "State patches written to the database.",
		}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Failed state persistence attempts by error class.",
		}, []string{"class"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.updatesServed,
		m.patchEntries,
		m.clientsForgotten,
		m.registeredClients,
		m.syncResults,
		m.persistedPatches,
		m.persistFailures,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// UpdateServed records an update of kind touching entries keys.
func (m *Metrics) UpdateServed(kind string, entries int) {
	if m == nil {
		return
	}
	m.updatesServed.WithLabelValues(kind).Inc()
	m.patchEntries.WithLabelValues(kind).Observe(float64(entries))
}

// ClientForgotten records the removal of a client record.
func (m *Metrics) ClientForgotten(reason string) {
	if m == nil {
		return
	}
	m.clientsForgotten.WithLabelValues(reason).Inc()
}

// SetRegisteredClients publishes the registry size.
func (m *Metrics) SetRegisteredClients(n int) {
	if m == nil {
		return
	}
	m.registeredClients.Set(float64(n))
}

// SyncResult records the outcome of one client round trip.
func (m *Metrics) SyncResult(result string) {
	if m == nil {
		return
	}
	m.syncResults.WithLabelValues(result).Inc()
}

// PatchPersisted records a successful state write.
func (m *Metrics) PatchPersisted() {
	if m == nil {
		return
	}
	m.persistedPatches.Inc()
}

// PersistFailed records a failed state write of the given error class.
func (m *Metrics) PersistFailed(class string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(class).Inc()
}
