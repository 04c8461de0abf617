// This file defines the repository for catalog collections. A collection is
// a named storefront grouping with a cover image; it shares no invariants
// with accounts or profiles.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/trendaura-auth/internal/model"
)

// CollectionRepo encapsulates all database queries related to collections.
type CollectionRepo struct {
	db *sql.DB
}

// NewCollectionRepo constructs a CollectionRepo bound to db.
func NewCollectionRepo(db *sql.DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

// Create inserts a new collection. On success the ID and CreatedAt fields
// are populated from the database so callers receive the stored record.
func (r *CollectionRepo) Create(ctx context.Context, c *model.Collection) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO collections (name, image) VALUES (?, ?)", c.Name, c.Image)
	if err != nil {
		return fmt.Errorf("%w: insert collection: %w", ErrStoreUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: last insert id: %w", ErrStoreUnavailable, err)
	}
	c.ID = uint64(id)

	// Follow-up SELECT for the default created_at value.
	if err := r.db.QueryRowContext(ctx, "SELECT created_at FROM collections WHERE id = ?", c.ID).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("%w: reload collection: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// GetByID fetches a collection by its ID.
func (r *CollectionRepo) GetByID(ctx context.Context, id uint64) (model.Collection, error) {
	var c model.Collection
	err := r.db.QueryRowContext(ctx, "SELECT id, name, image, created_at FROM collections WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Collection{}, ErrNotFound
		}
		return model.Collection{}, fmt.Errorf("%w: get collection: %w", ErrStoreUnavailable, err)
	}
	return c, nil
}

// ListAll returns every collection ordered by id.
func (r *CollectionRepo) ListAll(ctx context.Context) ([]model.Collection, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, image, created_at FROM collections ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: list collections: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make([]model.Collection, 0)
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan collection: %w", ErrStoreUnavailable, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate collections: %w", ErrStoreUnavailable, err)
	}
	return out, nil
}
