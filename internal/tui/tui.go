// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders a live terminal view of a replica: its fingerprint,
// its entries and the outcome of the last sync. Syncs can also be triggered
// from the view.
package tui

import (
	"context"
	"errors"
	"io"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the replica view.
type TUI struct {
	services *service.ClientServices
	build    models.AppBuildInfo

	logger *logger.Logger
}

// New creates the view over services.
func New(services *service.ClientServices, build models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.Client == nil {
		return nil, ErrNoReplica
	}
	return &TUI{services: services, build: build, logger: logger}, nil
}

// Run blocks until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	model := newReplicaModel(ctx, t.services.Client, t.services.SyncService, t.build)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Str("func", "*TUI.Run").Msg("terminal view failed")
	}
	return err
}

// LogFile opens path for appending log output while the view owns the
// terminal.
func LogFile(path string) (io.WriteCloser, error) {
	return tea.LogToFile(path, "")
}
