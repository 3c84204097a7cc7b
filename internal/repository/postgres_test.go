package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(sql, args)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	called := m.Called(sql, args)
	return called.Get(0).(pgx.Row)
}

// stubRow scans a single bytea/jsonb column.
type stubRow struct {
	value []byte
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.value
	return nil
}

func TestPostgresBlobs_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("existing key", func(t *testing.T) {
		db := new(mockQuerier)
		db.On("QueryRow", mock.AnythingOfType("string"), []any{KeyMembers}).
			Return(stubRow{value: []byte(`[]`)})

		value, err := NewPostgresBlobs(db, logger.Discard()).Get(ctx, KeyMembers)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(value))
		db.AssertExpectations(t)
	})

	t.Run("missing key", func(t *testing.T) {
		db := new(mockQuerier)
		db.On("QueryRow", mock.Anything, []any{KeyFeedback}).
			Return(stubRow{err: pgx.ErrNoRows})

		_, err := NewPostgresBlobs(db, logger.Discard()).Get(ctx, KeyFeedback)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("connection error", func(t *testing.T) {
		boom := errors.New("connection refused")
		db := new(mockQuerier)
		db.On("QueryRow", mock.Anything, mock.Anything).
			Return(stubRow{err: boom})

		_, err := NewPostgresBlobs(db, logger.Discard()).Get(ctx, KeyFeedback)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresBlobs_Put(t *testing.T) {
	ctx := context.Background()

	db := new(mockQuerier)
	db.On("Exec", mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "ON CONFLICT (key)")
	}), []any{KeyPreferences, `{"receiveFeedbackNotifications":true}`}).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Once()
	db.On("Exec", mock.Anything, []any{KeyFeedback}).
		Return(pgconn.CommandTag{}, errors.New("read only transaction")).Once()

	blobs := NewPostgresBlobs(db, logger.Discard())
	require.NoError(t, blobs.Put(ctx, KeyPreferences, []byte(`{"receiveFeedbackNotifications":true}`)))

	err := blobs.Delete(ctx, KeyFeedback)
	assert.ErrorContains(t, err, "read only transaction")
	db.AssertExpectations(t)
}
