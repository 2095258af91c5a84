package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"registrar_backend/internals/features/registrar/model"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *GormRepository[model.Course]) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return mock, NewGormRepository[model.Course](db)
}

func courseRow(uuid, code string, version int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version", "uuid", "creation_date", "test_run_uuid", "code", "name", "credit_hours"}).
		AddRow(1, version, uuid, time.Now(), nil, code, "Physics", 3)
}

func TestGormRepository_Count(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "courses" WHERE test_run_uuid = \$1`).
		WithArgs(runA).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background(), ByTestRun[model.Course](runA))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_ListProductionOnly(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "courses" WHERE test_run_uuid IS NULL ORDER BY id`).
		WillReturnRows(courseRow(runA, "PHY-101", 0))

	rows, err := repo.List(context.Background(), ByTestRun[model.Course](""))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PHY-101", rows[0].Code)
	assert.Equal(t, runA, rows[0].UUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FirstNotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "courses" WHERE uuid = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.First(context.Background(), ByUUID[model.Course](runA))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Create(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	c := &model.Course{Code: "PHY-101", Name: "Physics"}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, uint64(7), c.ID)
	assert.True(t, model.IsPossibleUUID(c.UUID), "uuid assigned by the create hook")
	assert.False(t, c.CreationDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_UpdateBumpsVersion(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`UPDATE "courses" SET .* WHERE version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := &model.Course{Code: "PHY-101", Name: "Physics II"}
	c.ID, c.UUID, c.Version = 1, runA, 2
	require.NoError(t, repo.Update(context.Background(), c, 2))
	assert.Equal(t, int64(3), c.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_UpdateStaleVersion(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`UPDATE "courses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "courses" WHERE uuid = \$1`).
		WithArgs(runA).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	c := &model.Course{Code: "PHY-101", Name: "Physics II"}
	c.ID, c.UUID = 1, runA
	err := repo.Update(context.Background(), c, 0)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(0), c.Version, "version restored on failure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_DeleteMissing(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM "courses" WHERE uuid = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "courses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := repo.Delete(context.Background(), runA, model.AnyVersion)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_DeleteWithVersion(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM "courses" WHERE uuid = \$1 AND version = \$2`).
		WithArgs(runA, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), runA, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_DriverErrorPassesThrough(t *testing.T) {
	mock, repo := setupMockDB(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "courses"`).WillReturnError(boom)

	_, err := repo.Count(context.Background(), All[model.Course]())
	assert.ErrorIs(t, err, boom)
}
