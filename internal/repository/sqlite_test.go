package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/internal/pkg/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteMock(t *testing.T) (*SQLiteBlobs, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSQLiteBlobs(db, logger.Discard()), mock
}

func TestSQLiteBlobs_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("existing key", func(t *testing.T) {
		blobs, mock := setupSQLiteMock(t)

		rows := sqlmock.NewRows([]string{"value"}).AddRow(`{"receiveFeedbackNotifications":false}`)
		mock.ExpectQuery("SELECT value FROM kv_store").
			WithArgs(KeyPreferences).
			WillReturnRows(rows)

		value, err := blobs.Get(ctx, KeyPreferences)
		require.NoError(t, err)
		assert.JSONEq(t, `{"receiveFeedbackNotifications":false}`, string(value))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key", func(t *testing.T) {
		blobs, mock := setupSQLiteMock(t)

		mock.ExpectQuery("SELECT value FROM kv_store").
			WithArgs(KeyMembers).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := blobs.Get(ctx, KeyMembers)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		blobs, mock := setupSQLiteMock(t)

		boom := errors.New("database is locked")
		mock.ExpectQuery("SELECT value FROM kv_store").
			WithArgs(KeyFeedback).
			WillReturnError(boom)

		_, err := blobs.Get(ctx, KeyFeedback)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLiteBlobs_PutDelete(t *testing.T) {
	ctx := context.Background()
	blobs, mock := setupSQLiteMock(t)

	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs(KeyInitialized, "true").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM kv_store").
		WithArgs(KeyFeedback).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, blobs.Put(ctx, KeyInitialized, []byte("true")))
	require.NoError(t, blobs.Delete(ctx, KeyFeedback))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteBlobs_File(t *testing.T) {
	ctx := context.Background()

	conn, err := sqlite.New(logger.Discard(), &sqlite.Config{
		Path:        filepath.Join(t.TempDir(), "feedback.db"),
		BusyTimeout: time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, conn.Connect(ctx))
	t.Cleanup(conn.Close)
	require.NoError(t, conn.Health(ctx))

	store := NewJSONStore(NewSQLiteBlobs(conn.DB(), logger.Discard()))

	ok, err := store.Initialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	members := domain.DefaultMembers()
	require.NoError(t, store.SaveMembers(ctx, members))
	require.NoError(t, store.MarkInitialized(ctx))

	got, err := store.LoadMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, members, got)

	members[0].Name = "Alexandra Johnson"
	require.NoError(t, store.SaveMembers(ctx, members))
	got, err = store.LoadMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alexandra Johnson", got[0].Name)

	ok, err = store.Initialized(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
