// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-delta-sync/internal/adapter"
	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/service"
)

const forgetTimeout = 5 * time.Second

var errNoServices = errors.New("client services are not provided")

// App runs a replica until the process receives a stop signal.
type App struct {
	services *service.ClientServices
	adapter  adapter.ServerAdapter
	workers  config.ClientWorkers
	view     View

	logger *logger.Logger
}

// NewApp wires the replica services to the adapter they talk through.
func NewApp(services *service.ClientServices, serverAdapter adapter.ServerAdapter, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || serverAdapter == nil {
		return nil, errNoServices
	}
	return &App{services: services, adapter: serverAdapter, workers: workers, logger: logger}, nil
}

// WithView makes Run hold the terminal with view until the user quits.
func (a *App) WithView(view View) *App {
	a.view = view
	return a
}

// Run implements [Client].
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

// run syncs on the configured interval until ctx is done or the view is
// left, then asks the server to drop this replica's record and closes the
// adapter.
func (a *App) run(ctx context.Context) error {
	client := a.services.Client
	a.logger.Info().Str("client_id", client.ID()).Dur("interval", a.workers.SyncInterval).Msg("replica started")

	var errs []error

	a.services.SyncJob.Start(ctx, a.workers.SyncInterval)
	if a.view != nil {
		if err := a.view.Run(ctx); err != nil {
			errs = append(errs, fmt.Errorf("view: %w", err))
		}
	} else {
		<-ctx.Done()
	}
	a.services.SyncJob.Stop()

	a.logger.Info().
		Str("client_id", client.ID()).
		Uint64("fingerprint", client.Fingerprint()).
		Int("entries", client.State().Len()).
		Msg("replica stopping")

	forgetCtx, cancel := context.WithTimeout(context.Background(), forgetTimeout)
	defer cancel()

	if err := a.adapter.ForgetClient(forgetCtx, client.ID()); err != nil {
		errs = append(errs, fmt.Errorf("forget client: %w", err))
	}
	if err := a.adapter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close adapter: %w", err))
	}

	return errors.Join(errs...)
}
