package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

func TestReferenceAdapter_QueryReferences(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewReferenceAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryReferences)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"test", "platform", "site", "value"}).
			AddRow("cold-loadtime", "fenix-g5", "amazon", 700.0).
			AddRow("cold-loadtime", "fenix-g5", "bing", 512.25),
		)

	values, err := adapter.QueryReferences(context.Background(), []string{"cold-loadtime"}, nil)
	require.NoError(t, err)
	require.Equal(t, []storage.ReferenceValue{
		{Test: "cold-loadtime", Platform: "fenix-g5", Site: "amazon", Value: 700},
		{Test: "cold-loadtime", Platform: "fenix-g5", Site: "bing", Value: 512.25},
	}, values)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceAdapter_UpsertReferences(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	adapter := NewReferenceAdapter(db)
	adapter.nowFn = func() time.Time { return now }

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertReference))
	prep.ExpectExec().
		WithArgs("cold-loadtime", "fenix-g5", "amazon", 700.0, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("cold-loadtime", "fenix-g5", "bing", 512.25, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = adapter.UpsertReferences(context.Background(), []storage.ReferenceValue{
		{Test: "cold-loadtime", Platform: "fenix-g5", Site: "amazon", Value: 700},
		{Test: "cold-loadtime", Platform: "fenix-g5", Site: "bing", Value: 512.25},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceAdapter_UpsertRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewReferenceAdapter(db)
	execErr := errors.New("constraint violation")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertReference))
	prep.ExpectExec().WillReturnError(execErr)
	mock.ExpectRollback()

	err = adapter.UpsertReferences(context.Background(), []storage.ReferenceValue{
		{Test: "cold-loadtime", Platform: "fenix-g5", Site: "amazon", Value: 700},
	})
	require.ErrorIs(t, err, execErr)
	require.ErrorContains(t, err, "cold-loadtime/fenix-g5/amazon")
	require.NoError(t, mock.ExpectationsWereMet())
}
