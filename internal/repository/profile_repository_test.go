package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trendaura-auth/internal/model"
)

const lockQuery = `SELECT profile_picture, bio, location, website FROM user_profiles WHERE user_id = \? FOR UPDATE`

var profileCols = []string{"profile_picture", "bio", "location", "website"}

func TestProfileCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_profiles (user_id) VALUES (?)")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), db, 5))

	mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs(uint64(5)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.ErrorIs(t, repo.Create(context.Background(), db, 5), ErrDuplicateProfile)
}

func TestProfileFindView_EmptyProfile(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT u.id, u.first_name, u.last_name, u.email, u.created_at,\s+up.profile_picture, up.bio, up.location, up.website\s+FROM users u\s+LEFT JOIN user_profiles up`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "created_at",
			"profile_picture", "bio", "location", "website"}).
			AddRow(1, "Ada", "Lovelace", "ada@example.com", created, nil, nil, nil, nil))

	v, err := repo.FindView(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", v.FirstName)
	assert.Nil(t, v.Bio)
	assert.Nil(t, v.ProfilePicture)
}

func TestProfileFindView_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT u.id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindView(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileUpsert_OnlyBioKeepsOtherColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("/uploads/old.png", "old", "London", "https://ada.dev"))
	mock.ExpectExec(`INSERT INTO user_profiles \(user_id, profile_picture, bio, location, website\)\s+VALUES \(\?, \?, \?, \?, \?\)\s+ON DUPLICATE KEY UPDATE`).
		WithArgs(uint64(7), "/uploads/old.png", "new bio", "London", "https://ada.dev").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	prev, err := repo.Upsert(context.Background(), 7, model.ProfileUpdate{Bio: strp("new bio")})
	require.NoError(t, err)
	require.NotNil(t, prev.Picture)
	assert.Equal(t, "/uploads/old.png", *prev.Picture)
	assert.Equal(t, "old", *prev.Bio)
}

func TestProfileUpsert_CreatesMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs(uint64(8)).WillReturnRows(sqlmock.NewRows(profileCols))
	mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs(uint64(8), nil, nil, "Paris", nil).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	prev, err := repo.Upsert(context.Background(), 8, model.ProfileUpdate{Location: strp("Paris")})
	require.NoError(t, err)
	assert.Nil(t, prev.Picture)
}

func TestProfileUpsert_UnknownAccount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs(uint64(9)).WillReturnRows(sqlmock.NewRows(profileCols))
	mock.ExpectExec("INSERT INTO user_profiles").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), 9, model.ProfileUpdate{Bio: strp("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileUpsert_WriteFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("/uploads/old.png", nil, nil, nil))
	mock.ExpectExec("INSERT INTO user_profiles").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), 7, model.ProfileUpdate{Picture: strp("/uploads/new.png")})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestProfileUpsert_BeginFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepo(db)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err := repo.Upsert(context.Background(), 7, model.ProfileUpdate{Bio: strp("x")})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
