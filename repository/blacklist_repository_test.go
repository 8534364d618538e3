package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"alumni-gateway/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newRepoWithMock(t *testing.T) (*BlacklistTokenRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBlacklistTokenRepository(db), mock
}

func TestBlacklistTokenRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	expiry := time.Now().Add(10 * time.Minute)
	record := &model.BlacklistedToken{
		Token:      "t1",
		UserID:     "u1",
		UserType:   "USER",
		TokenType:  model.TokenTypeAccess,
		ExpiryDate: expiry,
	}

	query := regexp.QuoteMeta(`INSERT INTO blacklisted_tokens (token, user_id, user_type, token_type, expiry_date)`)
	mock.ExpectQuery(query).
		WithArgs("t1", "u1", "USER", model.TokenTypeAccess, expiry).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	err := repo.Create(record)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklistTokenRepository_Create_DuplicateToken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	duplicateErr := errors.New(`pq: duplicate key value violates unique constraint "blacklisted_tokens_token_key"`)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO blacklisted_tokens`)).
		WillReturnError(duplicateErr)

	err := repo.Create(&model.BlacklistedToken{Token: "t1", UserID: "u1", UserType: "USER", TokenType: model.TokenTypeAccess, ExpiryDate: time.Now()})

	assert.ErrorIs(t, err, duplicateErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklistTokenRepository_ExistsByToken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	query := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token = $1)`)

	mock.ExpectQuery(query).WithArgs("present").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	exists, err := repo.ExistsByToken("present")
	assert.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(query).WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	exists, err = repo.ExistsByToken("absent")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklistTokenRepository_DeleteAllUserTokens(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM blacklisted_tokens WHERE user_id = $1 AND user_type = $2`)).
		WithArgs("u1", "USER").
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteAllUserTokens("u1", "USER")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklistTokenRepository_DeleteExpiredTokens(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	query := regexp.QuoteMeta(`DELETE FROM blacklisted_tokens WHERE expiry_date < $1`)

	mock.ExpectExec(query).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 2))
	deleted, err := repo.DeleteExpiredTokens(now)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// A repeated sweep with the same cutoff removes nothing further.
	mock.ExpectExec(query).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 0))
	deleted, err = repo.DeleteExpiredTokens(now)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
