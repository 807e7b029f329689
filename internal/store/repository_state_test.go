// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-delta-sync/internal/logger"
	"github.com/MKhiriev/go-delta-sync/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateRepo(t *testing.T) (*stateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &stateRepository{
		db: &DB{
			DB:                 db,
			driver:             "pgx",
			placeholder:        sq.Dollar,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             logger.Nop(),
		},
		logger: logger.Nop(),
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestStateRepository_Load(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	rows := sqlmock.NewRows([]string{"entry_key", "entry_value"}).
		AddRow("1", "A").
		AddRow("2", "B")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_key, entry_value FROM state_entries ORDER BY entry_key")).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "A", "2": "B"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_Load_QueryError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestStateRepository_Load_ScanError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	rows := sqlmock.NewRows([]string{"entry_key"}).AddRow("1")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestStateRepository_ApplyPatch(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM state_entries WHERE entry_key IN ($1,$2)")).
		WithArgs("2", "4").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO state_entries (entry_key,entry_value) VALUES ($1,$2),($3,$4) ON CONFLICT")).
		WithArgs("1", "A", "3", "C").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ApplyPatch(context.Background(), models.KVPatch{
		Altered: map[string]string{"3": "C", "1": "A"},
		Removed: []string{"2", "4"},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_ApplyPatch_EmptyIsNoop(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	require.NoError(t, repo.ApplyPatch(context.Background(), models.NewPatch[string, string]()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_ApplyPatch_RollsBackOnError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO state_entries").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()

	err := repo.ApplyPatch(context.Background(), models.KVPatch{
		Altered: map[string]string{"1": "A"},
	})

	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.Equal(t, Retryable, repo.Classify(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_ApplyPatch_BeginError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := repo.ApplyPatch(context.Background(), models.KVPatch{Removed: []string{"1"}})

	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestStateRepository_ApplyPatch_CommitError(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM state_entries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := repo.ApplyPatch(context.Background(), models.KVPatch{Removed: []string{"1"}})

	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestBuildQueries_SQLitePlaceholders(t *testing.T) {
	b := sq.StatementBuilder.PlaceholderFormat(sq.Question)

	query, args, err := buildUpsertStateQuery(b, []string{"a", "b"}, map[string]string{"b": "2", "a": "1"})
	require.NoError(t, err)
	assert.Contains(t, query, "VALUES (?,?),(?,?)")
	assert.Contains(t, query, "ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value")
	assert.Equal(t, []any{"a", "1", "b", "2"}, args)

	query, args, err = buildDeleteStateQuery(b, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM state_entries WHERE entry_key IN (?)", query)
	assert.Equal(t, []any{"x"}, args)
}

func TestStateRepository_ApplyPatch_SplitsLargePatches(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	const altered, removed = 16_500, 1_001
	patch := models.KVPatch{Altered: make(map[string]string, altered)}
	for i := range altered {
		patch.Altered[fmt.Sprintf("k%05d", i)] = fmt.Sprintf("v%d", i)
	}
	for i := range removed {
		patch.Removed = append(patch.Removed, fmt.Sprintf("r%05d", i))
	}

	mock.ExpectBegin()
	for start := 0; start < removed; start += stateBatchSize {
		var args []driver.Value
		for i := start; i < min(start+stateBatchSize, removed); i++ {
			args = append(args, fmt.Sprintf("r%05d", i))
		}
		mock.ExpectExec("DELETE FROM state_entries").
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, int64(len(args))))
	}
	for start := 0; start < altered; start += stateBatchSize {
		var args []driver.Value
		for i := start; i < min(start+stateBatchSize, altered); i++ {
			args = append(args, fmt.Sprintf("k%05d", i), fmt.Sprintf("v%d", i))
		}
		require.LessOrEqual(t, len(args), 2*stateBatchSize)
		mock.ExpectExec("INSERT INTO state_entries").
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, int64(len(args)/2)))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyPatch(context.Background(), patch))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepository_ApplyPatch_BatchFailureRollsBack(t *testing.T) {
	repo, mock := newTestStateRepo(t)

	patch := models.KVPatch{Altered: make(map[string]string)}
	for i := range stateBatchSize + 1 {
		patch.Altered[fmt.Sprintf("k%05d", i)] = "v"
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO state_entries").WillReturnResult(sqlmock.NewResult(0, stateBatchSize))
	mock.ExpectExec("INSERT INTO state_entries").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.ApplyPatch(context.Background(), patch)

	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
