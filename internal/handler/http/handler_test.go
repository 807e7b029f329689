// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "secret"

type testEnv struct {
	services *service.Services
	server   *httptest.Server
}

func newTestEnv(t *testing.T, initial map[string]string, hashKey string) *testEnv {
	t.Helper()

	cfg := config.StructuredConfig{App: config.App{Version: "1.2.3"}}
	m := metrics.New()
	services := service.NewServices(initial, nil, cfg, models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc"), m, logger.Nop())

	h := NewHandler(services, m, hashKey, logger.Nop())
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return &testEnv{services: services, server: srv}
}

func (e *testEnv) do(t *testing.T, method, path string, body []byte, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestSync_FirstRequestIsComplete(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1": "A", "2": "B"}, "")

	resp := env.do(t, http.MethodPost, "/api/sync", []byte(`{"id":"c-1","current_hash":"0"}`), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	update := decode[models.KVUpdate](t, resp)
	assert.True(t, update.IsComplete())
	assert.Equal(t, map[string]string{"1": "A", "2": "B"}, update.Patch.Altered)
	assert.Equal(t, env.services.Server.Fingerprint(), update.NewHash)
}

func TestSync_FollowUpIsDiff(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1": "A", "2": "B"}, "")

	first := decode[models.KVUpdate](t, env.do(t, http.MethodPost, "/api/sync", []byte(`{"id":"c-1","current_hash":"0"}`), nil))

	resp := env.do(t, http.MethodPut, "/api/state/3", []byte(`{"value":"C"}`), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, "/api/state/2", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	body, err := json.Marshal(models.KVUpdateRequest{ID: "c-1", CurrentHash: first.NewHash})
	require.NoError(t, err)
	second := decode[models.KVUpdate](t, env.do(t, http.MethodPost, "/api/sync", body, nil))

	require.True(t, second.IsDiff())
	assert.Equal(t, first.NewHash, second.OldHash)
	assert.Equal(t, map[string]string{"3": "C"}, second.Patch.Altered)
	assert.Equal(t, []string{"2"}, second.Patch.Removed)
}

func TestSync_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil, "")

	resp := env.do(t, http.MethodPost, "/api/sync", []byte(`{not json`), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/sync", []byte(`{"id":"","current_hash":"0"}`), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForgetClient(t *testing.T) {
	env := newTestEnv(t, map[string]string{"k": "v"}, "")

	env.do(t, http.MethodPost, "/api/sync", []byte(`{"id":"c-1","current_hash":"0"}`), nil)
	require.Equal(t, 1, env.services.Server.ClientCount())

	resp := env.do(t, http.MethodDelete, "/api/clients/c-1", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, env.services.Server.ClientCount())

	resp = env.do(t, http.MethodDelete, "/api/clients/c-1", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestState_GetSetDelete(t *testing.T) {
	env := newTestEnv(t, map[string]string{"a": "1"}, "")

	resp := env.do(t, http.MethodPut, "/api/state/b", []byte(`{"value":"2"}`), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	state := decode[models.StateResponse](t, env.do(t, http.MethodGet, "/api/state", nil, nil))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, state.Entries)
	assert.Equal(t, env.services.Server.Fingerprint(), state.Fingerprint)

	resp = env.do(t, http.MethodDelete, "/api/state/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/state/c", []byte(`nope`), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, nil, "")

	resp := env.do(t, http.MethodGet, "/api/version", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	info := decode[models.BuildInfoResponse](t, resp)
	assert.Equal(t, models.BuildInfoResponse{Version: "1.2.3", Date: "2026-01-01", Commit: "abc"}, info)
}

func TestHashing(t *testing.T) {
	env := newTestEnv(t, map[string]string{"k": "v"}, testHashKey)
	body := []byte(`{"id":"c-1","current_hash":"0"}`)

	resp := env.do(t, http.MethodPost, "/api/sync", body, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing signature")

	resp = env.do(t, http.MethodPost, "/api/sync", body, map[string]string{
		utils.HashHeader: utils.HashString("other body", testHashKey),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "wrong signature")

	resp = env.do(t, http.MethodPost, "/api/sync", body, map[string]string{
		utils.HashHeader: utils.HashString(string(body), testHashKey),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// reads are not signed
	resp = env.do(t, http.MethodGet, "/api/state", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTraceID(t *testing.T) {
	env := newTestEnv(t, nil, "")

	resp := env.do(t, http.MethodGet, "/api/state", nil, nil)
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))

	resp = env.do(t, http.MethodGet, "/api/state", nil, map[string]string{traceIDHeader: "trace-1"})
	assert.Equal(t, "trace-1", resp.Header.Get(traceIDHeader))
}

func TestGZip(t *testing.T) {
	env := newTestEnv(t, map[string]string{"k": "v"}, "")

	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(`{"value":"zipped"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	resp := env.do(t, http.MethodPut, "/api/state/z", compressed.Bytes(), map[string]string{
		"Content-Encoding": "gzip",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// the transport would decompress transparently without an explicit header
	resp = env.do(t, http.MethodGet, "/api/state", nil, map[string]string{"Accept-Encoding": "gzip"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var state models.StateResponse
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.Equal(t, "zipped", state.Entries["z"])
}

func TestGZip_NoContentIsNotEncoded(t *testing.T) {
	env := newTestEnv(t, nil, "")

	resp := env.do(t, http.MethodPut, "/api/state/k", []byte(`{"value":"v"}`), map[string]string{"Accept-Encoding": "gzip"})

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
}

func TestCheckHTTPMethod(t *testing.T) {
	env := newTestEnv(t, nil, "")

	resp := env.do(t, http.MethodPost, "/api/state", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/sync", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, map[string]string{"k": "v"}, "")
	env.do(t, http.MethodPost, "/api/sync", []byte(`{"id":"c-1","current_hash":"0"}`), nil)

	resp := env.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "deltasync_server_updates_served_total"))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(service.ErrMalformedUpdate))
	assert.Equal(t, http.StatusNotFound, statusFromError(service.ErrKeyNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(io.ErrUnexpectedEOF))
}
