package storage_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcncore/internal/models"
	"tcncore/internal/storage"
	"tcncore/internal/testutil"
)

var tcnColumns = []string{"tcn", "contact_start", "contact_end", "min_distance", "avg_distance", "total_count"}

func testTcn(fill byte) models.TemporaryContactNumber {
	var tcn models.TemporaryContactNumber
	for i := range tcn {
		tcn[i] = fill
	}
	return tcn
}

func newTestStore(t *testing.T) (storage.TcnStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tcns").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := storage.NewPostgresTcnStore(db, &testutil.MockLogger{})
	require.NoError(t, err)
	return store, mock
}

func TestNewPostgresTcnStoreCreatesTable(t *testing.T) {
	_, mock := newTestStore(t)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresTcnStoreFailsOnExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tcns").WillReturnError(errors.New("db down"))
	_, err = storage.NewPostgresTcnStore(db, &testutil.MockLogger{})
	assert.Error(t, err)
}

func TestAllReturnsScannedRows(t *testing.T) {
	store, mock := newTestStore(t)
	tcn := testTcn(0xab)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT tcn, contact_start, contact_end, min_distance, avg_distance, total_count FROM tcns")).
		WillReturnRows(sqlmock.NewRows(tcnColumns).
			AddRow(tcn[:], int64(100), int64(200), float32(1.5), float32(2.5), int64(3)))

	records, err := store.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, tcn, records[0].Tcn)
	assert.Equal(t, models.UnixTime(100), records[0].ContactStart)
	assert.Equal(t, models.UnixTime(200), records[0].ContactEnd)
	assert.Equal(t, float32(1.5), records[0].MinDistance)
	assert.Equal(t, float32(2.5), records[0].AvgDistance)
	assert.Equal(t, 3, records[0].TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllRejectsBadKeyLength(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(tcnColumns).
			AddRow([]byte{0x01, 0x02}, int64(1), int64(2), float32(1), float32(1), int64(1)))

	_, err := store.All()
	assert.ErrorContains(t, err, "tcn key length")
}

func TestFindTcnsQueriesByKeyArray(t *testing.T) {
	store, mock := newTestStore(t)
	tcn := testTcn(0x11)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tcn = ANY($1)")).
		WithArgs(pq.Array([][]byte{tcn[:]})).
		WillReturnRows(sqlmock.NewRows(tcnColumns).
			AddRow(tcn[:], int64(10), int64(20), float32(1.0), float32(1.0), int64(1)))

	records, err := store.FindTcns([]models.TemporaryContactNumber{tcn})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, tcn, records[0].Tcn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTcnsSkipsQueryForEmptySet(t *testing.T) {
	store, mock := newTestStore(t)

	records, err := store.FindTcns(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverwriteDeletesAndInserts(t *testing.T) {
	store, mock := newTestStore(t)
	tcn := testTcn(0x22)
	rec := models.ObservedTcn{
		Tcn:          tcn,
		ContactStart: 100,
		ContactEnd:   200,
		MinDistance:  0.5,
		AvgDistance:  1.5,
		TotalCount:   4,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tcns WHERE tcn = ANY($1)")).
		WithArgs(pq.Array([][]byte{tcn[:]})).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tcns").
		WithArgs(tcn[:], int64(100), int64(200), float32(0.5), float32(1.5), int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Overwrite([]models.TemporaryContactNumber{tcn}, []models.ObservedTcn{rec})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverwriteRollsBackOnInsertError(t *testing.T) {
	store, mock := newTestStore(t)
	tcn := testTcn(0x33)
	rec := models.ObservedTcn{Tcn: tcn, ContactStart: 1, ContactEnd: 2, TotalCount: 1}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tcns").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO tcns").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := store.Overwrite([]models.TemporaryContactNumber{tcn}, []models.ObservedTcn{rec})
	assert.ErrorContains(t, err, "inserting tcn")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverwriteSkipsDeleteForEmptySet(t *testing.T) {
	store, mock := newTestStore(t)
	tcn := testTcn(0x44)
	rec := models.ObservedTcn{Tcn: tcn, ContactStart: 1, ContactEnd: 2, TotalCount: 1}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tcns").
		WithArgs(tcn[:], int64(1), int64(2), float32(0), float32(0), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.Overwrite(nil, []models.ObservedTcn{rec})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
