package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/trendaura-auth/internal/database"
	"github.com/iliyamo/trendaura-auth/internal/model"
)

// ProfileRepo is the profile store backed by `user_profiles`. Every
// account owns exactly one row, enforced by the unique index on user_id.
type ProfileRepo struct{ db *sql.DB }

// NewProfileRepo constructs a ProfileRepo bound to db.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// Create inserts the empty profile row for a freshly created account.
func (r *ProfileRepo) Create(ctx context.Context, q database.DBTX, userID uint64) error {
	_, err := q.ExecContext(ctx, "INSERT INTO user_profiles (user_id) VALUES (?)", userID)
	if err != nil {
		if database.IsMySQLError(err, database.ErrNumDuplicateEntry) {
			return ErrDuplicateProfile
		}
		return fmt.Errorf("%w: insert profile: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// FindView returns the account joined with its profile. The password hash
// is not selected.
func (r *ProfileRepo) FindView(ctx context.Context, userID uint64) (model.ProfileView, error) {
	const q = `SELECT u.id, u.first_name, u.last_name, u.email, u.created_at,
	                  up.profile_picture, up.bio, up.location, up.website
	           FROM users u
	           LEFT JOIN user_profiles up ON u.id = up.user_id
	           WHERE u.id = ?`
	var v model.ProfileView
	var picture, bio, location, website sql.NullString
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.CreatedAt,
		&picture, &bio, &location, &website)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProfileView{}, ErrNotFound
		}
		return model.ProfileView{}, fmt.Errorf("%w: find profile: %w", ErrStoreUnavailable, err)
	}
	v.ProfilePicture = nullable(picture)
	v.Bio = nullable(bio)
	v.Location = nullable(location)
	v.Website = nullable(website)
	return v, nil
}

// Upsert merges upd into the stored profile and writes the result. The
// existing row is locked for the duration of the transaction so concurrent
// partial updates do not lose each other's fields. It returns the profile
// as it was before the update so callers can clean up replaced assets.
func (r *ProfileRepo) Upsert(ctx context.Context, userID uint64, upd model.ProfileUpdate) (model.Profile, error) {
	var prev model.Profile
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		var err error
		prev, err = lockProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		next := prev.Merge(upd)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_profiles (user_id, profile_picture, bio, location, website)
			 VALUES (?, ?, ?, ?, ?)
			 ON DUPLICATE KEY UPDATE
			 profile_picture = VALUES(profile_picture),
			 bio = VALUES(bio),
			 location = VALUES(location),
			 website = VALUES(website)`,
			userID, next.Picture, next.Bio, next.Location, next.Website)
		if err != nil {
			if database.IsMySQLError(err, database.ErrNumNoReferencedRow) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: upsert profile: %w", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return model.Profile{}, storeErr(err)
	}
	return prev, nil
}

// lockProfile reads the current row FOR UPDATE. A missing row is not an
// error: the upsert will create it.
func lockProfile(ctx context.Context, tx database.DBTX, userID uint64) (model.Profile, error) {
	p := model.Profile{UserID: userID}
	var picture, bio, location, website sql.NullString
	err := tx.QueryRowContext(ctx,
		"SELECT profile_picture, bio, location, website FROM user_profiles WHERE user_id = ? FOR UPDATE",
		userID).Scan(&picture, &bio, &location, &website)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("%w: lock profile: %w", ErrStoreUnavailable, err)
	}
	p.Picture = nullable(picture)
	p.Bio = nullable(bio)
	p.Location = nullable(location)
	p.Website = nullable(website)
	return p, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
