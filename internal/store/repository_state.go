// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-delta-sync/internal/diff"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/models"
)

// stateRepository is the SQL implementation of [StateRepository]. It works
// on both PostgreSQL and SQLite; the placeholder format comes from [DB].
type stateRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewStateRepository constructs a [StateRepository] backed by db.
func NewStateRepository(db *DB, log *logger.Logger) StateRepository {
	log.Debug().Str("driver", db.driver).Msg("creating state repository")
	return &stateRepository{
		db:     db,
		logger: log,
	}
}

func (r *stateRepository) Load(ctx context.Context) (map[string]string, error) {
	query, args, err := buildSelectStateQuery(r.db.builder())
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*stateRepository.Load").Msg("error selecting state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			r.logger.Err(err).Str("func", "*stateRepository.Load").Msg("error scanning state row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// ApplyPatch writes patch in one transaction, splitting it into statements
// of at most stateBatchSize entries.
func (r *stateRepository) ApplyPatch(ctx context.Context, patch models.KVPatch) (err error) {
	if diff.IsEmpty(patch) {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "*stateRepository.ApplyPatch").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for keys := range slices.Chunk(patch.Removed, stateBatchSize) {
		if err = r.exec(ctx, tx)(buildDeleteStateQuery(r.db.builder(), keys)); err != nil {
			return err
		}
	}

	altered := slices.Sorted(maps.Keys(patch.Altered))
	for keys := range slices.Chunk(altered, stateBatchSize) {
		if err = r.exec(ctx, tx)(buildUpsertStateQuery(r.db.builder(), keys, patch.Altered)); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "*stateRepository.ApplyPatch").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	r.logger.Debug().
		Int("altered", len(patch.Altered)).
		Int("removed", len(patch.Removed)).
		Msg("state patch persisted")

	return nil
}

func (r *stateRepository) Classify(err error) ErrorClassification {
	if r.db.errorClassificator == nil {
		return NonRetryable
	}
	return r.db.errorClassificator.Classify(err)
}

// exec returns a function running a freshly built statement inside tx, so
// that a builder's (query, args, err) result can be passed to it directly.
func (r *stateRepository) exec(ctx context.Context, tx *sql.Tx) func(string, []any, error) error {
	return func(query string, args []any, err error) error {
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Err(err).Str("func", "*stateRepository.exec").Msg("error executing statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	}
}
