package service

import (
	"context"
	"strings"

	"github.com/samber/oops"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/storage"
)

// CollectionStore persists catalog collections.
type CollectionStore interface {
	Create(ctx context.Context, c *model.Collection) error
	GetByID(ctx context.Context, id uint64) (model.Collection, error)
	ListAll(ctx context.Context) ([]model.Collection, error)
}

// CatalogService manages storefront collections.
type CatalogService struct {
	collections CollectionStore
	assets      storage.Store
	log         logging.Logger
}

// NewCatalogService builds the collections service. assets receives the
// collection images.
func NewCatalogService(collections CollectionStore, assets storage.Store, log logging.Logger) *CatalogService {
	return &CatalogService{collections: collections, assets: assets, log: log}
}

// List returns every collection, oldest first.
func (s *CatalogService) List(ctx context.Context) ([]model.Collection, error) {
	items, err := s.collections.ListAll(ctx)
	if err != nil {
		return nil, oops.Code("COLLECTION_LIST_FAILED").Wrap(err)
	}
	return items, nil
}

// Get returns one collection or repository.ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id uint64) (model.Collection, error) {
	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return model.Collection{}, oops.Code("COLLECTION_LOOKUP_FAILED").With("id", id).Wrap(err)
	}
	return c, nil
}

// Create stores the cover image and inserts the collection. The image is
// removed again when the insert fails.
func (s *CatalogService) Create(ctx context.Context, name string, image Upload) (model.Collection, error) {
	errb := oops.With("name", name)
	ref, err := s.assets.Store(ctx, image.Data, image.Name)
	if err != nil {
		return model.Collection{}, errb.Code("COLLECTION_ASSET_STORE_FAILED").Wrap(err)
	}
	c := model.Collection{Name: strings.TrimSpace(name), Image: ref}
	if err := s.collections.Create(ctx, &c); err != nil {
		if derr := s.assets.Delete(context.WithoutCancel(ctx), ref); derr != nil {
			s.log.Warn(ctx, "delete asset failed", "ref", ref, "error", derr)
		}
		return model.Collection{}, errb.Code("COLLECTION_CREATE_FAILED").Wrap(err)
	}
	return c, nil
}
