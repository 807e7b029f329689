// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/internal/metrics"
	"github.com/MKhiriev/go-delta-sync/internal/state"
)

type clientSyncService[ID comparable, S state.State[S, P], P any] struct {
	client    *SyncClient[ID, S, P]
	transport UpdateTransport[ID, P]

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewClientSyncService wires client to transport. m may be nil.
func NewClientSyncService[ID comparable, S state.State[S, P], P any](
	client *SyncClient[ID, S, P],
	transport UpdateTransport[ID, P],
	m *metrics.Metrics,
	log *logger.Logger,
) ClientSyncService {
	if log == nil {
		log = logger.Nop()
	}
	return &clientSyncService[ID, S, P]{client: client, transport: transport, metrics: m, logger: log}
}

// Sync implements [ClientSyncService].
//
// When the server answers with a diff the replica cannot start from, the
// server has already recorded the replica as stale, so a single re-request
// yields a complete update. A fingerprint mismatch after applying is not
// retried.
func (s *clientSyncService[ID, S, P]) Sync(ctx context.Context) error {
	err := s.roundTrip(ctx)
	if errors.Is(err, ErrInvalidUpdateStartState) {
		s.logger.Warn().Err(err).Msg("replica out of step, requesting complete update")
		err = s.roundTrip(ctx)
	}
	if err != nil {
		return err
	}

	s.logger.Debug().Uint64("fingerprint", s.client.Fingerprint()).Msg("replica synchronized")
	return nil
}

func (s *clientSyncService[ID, S, P]) roundTrip(ctx context.Context) error {
	update, err := s.transport.RequestUpdate(ctx, s.client.UpdateRequest())
	if err != nil {
		s.metrics.SyncResult(metrics.ResultTransport)
		return fmt.Errorf("request update: %w", err)
	}

	if err = s.client.ApplyUpdate(update); err != nil {
		s.metrics.SyncResult(syncResult(err))
		return fmt.Errorf("apply %s update: %w", update.Kind, err)
	}

	s.metrics.SyncResult(metrics.ResultOK)
	return nil
}

func syncResult(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUpdateStartState):
		return metrics.ResultInvalidStartState
	case errors.Is(err, ErrHashResultDiff):
		return metrics.ResultHashMismatch
	case errors.Is(err, ErrMalformedUpdate):
		return metrics.ResultMalformed
	default:
		return metrics.ResultTransport
	}
}
