// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/handler"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/server"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/store"
	"github.com/MKhiriev/go-delta-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-delta-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()
	m := metrics.New()

	var (
		initial map[string]string
		repo    store.StateRepository
	)
	if cfg.Storage.DB.DSN != "" {
		db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to database")
		}
		defer db.Close()

		if err = db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("error migrating database")
		}

		repo = store.NewRepositories(db, log).State
		if initial, err = repo.Load(ctx); err != nil {
			log.Fatal().Err(err).Msg("error loading state")
		}
		log.Info().Int("entries", len(initial)).Msg("state loaded")
	} else {
		log.Warn().Msg("no database configured, state is kept in memory")
	}

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services := service.NewServices(initial, repo, *cfg, build, m, log)

	handlers, err := handler.NewHandlers(services, m, cfg.Server, cfg.App.HashKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	services.Workers.Start(ctx)
	srv.RunServer()
	services.Workers.Stop()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
