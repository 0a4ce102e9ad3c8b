//go:build unit

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"qr-seat-reservation/internal/domain/ticket"
	"qr-seat-reservation/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, sql, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, sql, args)
	return mockArgs.Get(0).(pgx.Row)
}

func (m *MockDBTX) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	mockArgs := m.Called(ctx, b)
	return mockArgs.Get(0).(pgx.BatchResults)
}

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, infra.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, infra.KindDuplicateKey},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, infra.KindForeignKeyViolated},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, infra.KindConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, infra.KindConflict},
		{"anything else", errors.New("connection reset"), infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapErr("op", tt.err)
			assert.True(t, infra.IsKind(err, tt.kind), err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "success",
			tag:  pgconn.NewCommandTag("UPDATE 1"),
		},
		{
			name:     "user missing",
			tag:      pgconn.NewCommandTag("UPDATE 0"),
			wantKind: infra.KindNotFound,
		},
		{
			name:     "database error",
			tag:      pgconn.NewCommandTag(""),
			mockErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, mock.Anything, []any{testUserID, at}).Return(tt.tag, tt.mockErr)

			err := NewUserRepository(db).UpdateLastLogin(context.Background(), testUserID, at)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestTicketCreate_DuplicateCode(t *testing.T) {
	tk, err := ticket.NewTicket("TK0001", []byte("png"), time.Now())
	require.NoError(t, err)

	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.NewCommandTag(""), &pgconn.PgError{Code: "23505", ConstraintName: "tickets_code_key"})

	err = NewTicketRepository(db).Create(context.Background(), tk)
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), err)
	db.AssertExpectations(t)
}
