// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultRetryCount   = 2
	defaultRetryWait    = 100 * time.Millisecond
	defaultRetryMaxWait = time.Second
)

// HTTPClient embeds *resty.Client so all of its methods are available
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that retries failed
// connections and 5xx answers a couple of times with backoff.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryWait).
		SetRetryMaxWaitTime(defaultRetryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &HTTPClient{Client: client}
}
