// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the merged server configuration can be used at
// startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN != "" {
		switch cfg.Storage.DB.Driver {
		case DriverPostgres, DriverSQLite:
		default:
			return ErrInvalidStorageConfigs
		}
		if cfg.Workers.PersistInterval <= 0 {
			return ErrInvalidWorkerConfigs
		}
	}

	if cfg.Workers.ClientTTL < 0 || (cfg.Workers.ClientTTL > 0 && cfg.Workers.ReapInterval <= 0) {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" && cfg.Adapter.GRPCAddress == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
