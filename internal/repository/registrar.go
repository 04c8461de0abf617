package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/trendaura-auth/internal/database"
	"github.com/iliyamo/trendaura-auth/internal/model"
)

// Registrar creates an account together with its empty profile in a single
// transaction, so a failed profile insert never leaves an orphaned account.
type Registrar struct {
	db       *sql.DB
	users    *UserRepo
	profiles *ProfileRepo
}

// NewRegistrar returns a Registrar that writes through db, reusing the
// insert statements of users and profiles inside its transaction.
func NewRegistrar(db *sql.DB, users *UserRepo, profiles *ProfileRepo) *Registrar {
	return &Registrar{db: db, users: users, profiles: profiles}
}

// Register returns the new account id. ErrEmailExists and
// ErrDuplicateProfile pass through unchanged.
func (r *Registrar) Register(ctx context.Context, u *model.User) (uint64, error) {
	var id uint64
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		var err error
		if id, err = r.users.Create(ctx, tx, u); err != nil {
			return err
		}
		return r.profiles.Create(ctx, tx, id)
	})
	if err != nil {
		return 0, storeErr(err)
	}
	return id, nil
}
