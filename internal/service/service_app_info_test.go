// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/stretchr/testify/assert"
)

func TestAppInfoService_ConfiguredVersionWins(t *testing.T) {
	svc := NewAppInfoService(config.App{Version: "3.1.4"}, models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc"), logger.Nop())

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
	assert.Equal(t, models.BuildInfoResponse{Version: "3.1.4", Date: "2026-01-01", Commit: "abc"}, svc.GetBuildInfo(context.Background()))
}

func TestAppInfoService_FallsBackToBuildVersion(t *testing.T) {
	svc := NewAppInfoService(config.App{}, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())

	assert.Equal(t, "1.0.0", svc.GetAppVersion(context.Background()))
}

func TestAppInfoService_NoVersionAtAll(t *testing.T) {
	svc := NewAppInfoService(config.App{}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	assert.Equal(t, "N/A", svc.GetAppVersion(context.Background()))
	assert.Equal(t, "N/A", svc.GetBuildInfo(context.Background()).Commit)
}
