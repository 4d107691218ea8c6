package member

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/changhyeonkim/gym-member-api/internal/shared/testutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepository_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) (Store, string) {
		return NewGormRepository(testutil.SetupTestDB(t), BackendSQLite), uuid.NewString()
	})
}

func TestGormRepository_Backend(t *testing.T) {
	db, _ := testutil.SetupMockDB(t)
	assert.Equal(t, BackendPostgres, NewGormRepository(db, BackendPostgres).Backend())
}

func TestGormRepository_ConnectionFailureIsBackendUnavailable(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	repo := NewGormRepository(db, BackendPostgres)

	connErr := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "member"`)).WillReturnError(connErr)

	_, err := repo.List(context.Background(), 1, 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_DeadlineExceededIsBackendUnavailable(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	repo := NewGormRepository(db, BackendPostgres)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "member"`)).WillReturnError(context.DeadlineExceeded)

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.False(t, errors.Is(err, ErrMemberNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_PostgresUniqueViolation(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	repo := NewGormRepository(db, BackendPostgres)

	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "idx_member_m_id"`,
		Detail:         "Key (m_id)=(001) already exists.",
		ConstraintName: "idx_member_m_id",
	}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "member"`)).WillReturnError(pgErr)

	_, err := repo.Insert(context.Background(), sampleMember("001"))

	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "mId", dup.Field)
	assert.Equal(t, "001", dup.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_DeleteReportsRowsAffected(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	repo := NewGormRepository(db, BackendPostgres)
	id := uuid.NewString()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "member" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "member" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_UnknownErrorIsWrapped(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	repo := NewGormRepository(db, BackendPostgres)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "member"`)).WillReturnError(errors.New("relation does not exist"))

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBackendUnavailable))
	assert.False(t, errors.Is(err, ErrMemberNotFound))
	assert.Contains(t, err.Error(), "relation does not exist")
}
