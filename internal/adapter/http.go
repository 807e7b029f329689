// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout. When appCfg.HashKey is set every request body is signed.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	return &httpServerAdapter{client: client, hashKey: appCfg.HashKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// RequestUpdate implements [ServerAdapter]. It POSTs req to /api/sync and
// decodes the [models.KVUpdate] answer.
func (h *httpServerAdapter) RequestUpdate(ctx context.Context, req models.KVUpdateRequest) (models.KVUpdate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.KVUpdate{}, fmt.Errorf("encode update request: %w", err)
	}

	resp, err := h.signedRequest(ctx, body).Post("/api/sync")
	if err != nil {
		return models.KVUpdate{}, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.KVUpdate{}, err
	}

	var update models.KVUpdate
	if err = json.Unmarshal(resp.Body(), &update); err != nil {
		return models.KVUpdate{}, fmt.Errorf("decode update response: %w", err)
	}

	h.logger.Debug().Str("func", "*httpServerAdapter.RequestUpdate").
		Str("kind", string(update.Kind)).
		Int("entries", update.Patch.Len()).
		Msg("update received")

	return update, nil
}

// ForgetClient implements [ServerAdapter]. It sends DELETE /api/clients/{id}.
func (h *httpServerAdapter) ForgetClient(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/api/clients/{id}")
	if err != nil {
		return fmt.Errorf("forget client request: %w", err)
	}

	return mapHTTPError(resp)
}

// Close implements [ServerAdapter]. HTTP connections are pooled by the
// client, so there is nothing to release.
func (h *httpServerAdapter) Close() error {
	return nil
}

func (h *httpServerAdapter) signedRequest(ctx context.Context, body []byte) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hashKey != "" {
		req.SetHeader(utils.HashHeader, hex.EncodeToString(utils.Hash(body)))
	}
	return req
}
