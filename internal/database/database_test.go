package database

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/idea-management-api/internal/config"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFromSQLX(sqlx.NewDb(conn, "sqlmock"), config.DatabaseTypeMySQL, logger), mock
}

func TestWithTransaction_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE IDEA").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTransaction(context.Background(), func(tx *Transaction) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE IDEA SET STATUS = ?", "Approved")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := db.WithTransaction(context.Background(), func(tx *Transaction) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer conn.Close()

	db := NewFromSQLX(sqlx.NewDb(conn, "sqlmock"), config.DatabaseTypeSQLite, logrus.New())
	mock.ExpectPing()

	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.Equal(t, config.DatabaseTypeSQLite, db.Type())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitialize_RejectsMemoryType(t *testing.T) {
	_, err := Initialize(&config.DatabaseConfig{Type: config.DatabaseTypeMemory}, logrus.New())
	assert.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Type: config.DatabaseTypeSQLite,
		Path: t.TempDir() + "/ideas.sqlite",
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := Initialize(cfg, logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))
	// second run is a no-op
	require.NoError(t, db.Migrate(ctx))

	version, err := db.MigrationVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM IDEA"))
	assert.Zero(t, count)
}
