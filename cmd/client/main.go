// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/MKhiriev/go-delta-sync/internal/adapter"
	"github.com/MKhiriev/go-delta-sync/internal/client"
	"github.com/MKhiriev/go-delta-sync/internal/config"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/service"
	"github.com/MKhiriev/go-delta-sync/internal/tui"
	"github.com/MKhiriev/go-delta-sync/internal/utils"
	"github.com/MKhiriev/go-delta-sync/models"
)

const logFileName = "go-delta-sync-client.log"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("go-delta-sync-client").Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.Adapter.ClientID == "" {
		cfg.Adapter.ClientID = utils.NewUUIDGenerator().Generate()
	}
	log := logger.NewClientLogger(cfg.Adapter.ClientID)
	if cfg.App.Interactive {
		logFile, err := tui.LogFile(logFileName)
		if err != nil {
			log.Fatal().Err(err).Msg("open log file")
		}
		defer logFile.Close()
		log = logger.NewClientLoggerTo(logFile, cfg.Adapter.ClientID)
	}

	serverAdapter, err := adapter.NewServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services := service.NewClientServices(cfg.Adapter.ClientID, serverAdapter, metrics.New(), log)

	app, err := client.NewApp(services, serverAdapter, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if cfg.App.Interactive {
		build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
		view, err := tui.New(services, build, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating ui")
		}
		app.WithView(view)
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
