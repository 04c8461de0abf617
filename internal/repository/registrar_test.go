package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trendaura-auth/internal/model"
)

func newRegistrar(t *testing.T) (*Registrar, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return NewRegistrar(db, NewUserRepo(db), NewProfileRepo(db)), mock
}

func TestRegister_CommitsAccountAndProfile(t *testing.T) {
	reg, mock := newRegistrar(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO user_profiles").WithArgs(uint64(42)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := reg.Register(context.Background(), &model.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestRegister_ProfileFailureRollsBackAccount(t *testing.T) {
	reg, mock := newRegistrar(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO user_profiles").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := reg.Register(context.Background(), &model.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRegister_DuplicateEmailRollsBack(t *testing.T) {
	reg, mock := newRegistrar(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := reg.Register(context.Background(), &model.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_CommitFailure(t *testing.T) {
	reg, mock := newRegistrar(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO user_profiles").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	_, err := reg.Register(context.Background(), &model.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
