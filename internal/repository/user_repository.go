package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/trendaura-auth/internal/database"
	"github.com/iliyamo/trendaura-auth/internal/model"
)

const userColumns = "id,first_name,last_name,email,password_hash,role,email_verified_at,created_at,updated_at"

// UserRepo is the credential store backed by the `users` table.
type UserRepo struct{ db *sql.DB }

// NewUserRepo constructs a UserRepo bound to db.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts an account using q, which may be the pool or a transaction,
// and returns its ID. A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, q database.DBTX, u *model.User) (uint64, error) {
	role := u.Role
	if role == "" {
		role = model.RoleUser
	}
	res, err := q.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password_hash, role) VALUES (?,?,?,?,?)",
		u.FirstName, u.LastName, strings.TrimSpace(u.Email), u.PasswordHash, role)
	if err != nil {
		if database.IsMySQLError(err, database.ErrNumDuplicateEntry) {
			return 0, ErrEmailExists
		}
		return 0, fmt.Errorf("%w: insert user: %w", ErrStoreUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %w", ErrStoreUnavailable, err)
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by its exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", strings.TrimSpace(email))
	return scanUser(row)
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// MarkEmailVerified stamps email_verified_at once; later calls keep the
// first timestamp.
func (r *UserRepo) MarkEmailVerified(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET email_verified_at = COALESCE(email_verified_at, UTC_TIMESTAMP()) WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("%w: verify email: %w", ErrStoreUnavailable, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u        model.User
		verified sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role,
		&verified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("%w: scan user: %w", ErrStoreUnavailable, err)
	}
	if verified.Valid {
		t := verified.Time
		u.EmailVerifiedAt = &t
	}
	return u, nil
}
