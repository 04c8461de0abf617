// Package storage keeps uploaded binary assets (profile pictures, collection
// images) outside the record store. A stored asset is addressed by the
// reference string Store returns; that string is what gets persisted.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/trendaura-auth/internal/config"
)

// ErrStorage wraps every backend failure.
var ErrStorage = errors.New("asset storage failure")

// Store saves and removes assets.
type Store interface {
	// Store writes data under a freshly generated name and returns its reference.
	Store(ctx context.Context, data []byte, suggestedName string) (string, error)
	// Delete removes the asset behind ref. Missing assets and references
	// owned by another backend are not errors.
	Delete(ctx context.Context, ref string) error
}

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.Dir, cfg.URLPrefix)
	case "s3":
		return NewS3StoreFromConfig(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
