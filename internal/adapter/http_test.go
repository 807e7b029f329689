// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

// newTestAdapter points an httpServerAdapter at a test server.
func newTestAdapter(t *testing.T, serverURL string, hashKey string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: time.Second}
	appCfg := config.ClientApp{HashKey: hashKey}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://sync.example.com/ ", want: "https://sync.example.com"},
		{raw: "", wantErr: ErrEmptyAddress},
		{raw: "http://", wantErr: ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestUpdate_Success(t *testing.T) {
	want := models.NewDiffUpdate(models.KVPatch{
		Altered: map[string]string{"3": "C"},
		Removed: []string{"2"},
	}, 1<<64-1, 42)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"id":"client-7","current_hash":"42"}`, string(body))
		assert.Equal(t, utils.HashString(string(body), testHashKey), r.Header.Get(utils.HashHeader))

		_, _ = utils.WriteJSON(w, want, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testHashKey)
	got, err := a.RequestUpdate(context.Background(), models.KVUpdateRequest{ID: "client-7", CurrentHash: 42})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRequestUpdate_NoHashKey_NoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(utils.HashHeader))
		_, _ = utils.WriteJSON(w, models.NewCompleteUpdate(models.NewPatch[string, string](), 1), http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.RequestUpdate(context.Background(), models.KVUpdateRequest{ID: "c"})

	require.NoError(t, err)
	assert.True(t, got.IsComplete())
}

func TestRequestUpdate_ErrorStatuses(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{status: http.StatusNotFound, wantErr: ErrNotFound},
		{status: http.StatusConflict, wantErr: ErrConflict},
		{status: http.StatusGatewayTimeout, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			_, err := a.RequestUpdate(context.Background(), models.KVUpdateRequest{ID: "c"})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestUpdate_UnmappedStatusKeepsCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.RequestUpdate(context.Background(), models.KVUpdateRequest{ID: "c"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418: I'm a teapot")
}

func TestRequestUpdate_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.RequestUpdate(context.Background(), models.KVUpdateRequest{ID: "c"})

	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestForgetClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/clients/client-7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	require.NoError(t, a.ForgetClient(context.Background(), "client-7"))
	assert.NoError(t, a.Close())
}

func TestSignedRequest_HeaderIsHexHMAC(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1", testHashKey)
	body := []byte(`{"id":"x"}`)

	req := a.signedRequest(context.Background(), body)

	sum, err := hex.DecodeString(req.Header.Get(utils.HashHeader))
	require.NoError(t, err)
	assert.Equal(t, utils.Hash(body), sum)
}
