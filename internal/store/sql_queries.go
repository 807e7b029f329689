// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// stateBatchSize is the number of entries written by one statement. An
// upsert binds two variables per entry, which keeps it far below the
// SQLite (32766) and PostgreSQL (65535) bind variable limits.
const stateBatchSize = 500

const (
	stateTable       = "state_entries"
	stateKeyColumn   = "entry_key"
	stateValueColumn = "entry_value"
)

// upsertStateSuffix is understood by both PostgreSQL and SQLite 3.24+.
const upsertStateSuffix = "ON CONFLICT (" + stateKeyColumn + ") DO UPDATE SET " +
	stateValueColumn + " = excluded." + stateValueColumn + ", updated_at = CURRENT_TIMESTAMP"

func buildSelectStateQuery(b sq.StatementBuilderType) (string, []any, error) {
	query, args, err := b.
		Select(stateKeyColumn, stateValueColumn).
		From(stateTable).
		OrderBy(stateKeyColumn).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpsertStateQuery upserts the entries of altered named by keys, in
// the order of keys.
func buildUpsertStateQuery(b sq.StatementBuilderType, keys []string, altered map[string]string) (string, []any, error) {
	insert := b.Insert(stateTable).Columns(stateKeyColumn, stateValueColumn)
	for _, key := range keys {
		insert = insert.Values(key, altered[key])
	}

	query, args, err := insert.Suffix(upsertStateSuffix).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteStateQuery(b sq.StatementBuilderType, removed []string) (string, []any, error) {
	query, args, err := b.
		Delete(stateTable).
		Where(sq.Eq{stateKeyColumn: removed}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
