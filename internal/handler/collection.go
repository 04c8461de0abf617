package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/repository"
	"github.com/iliyamo/trendaura-auth/internal/service"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

// Catalog is the collection service as seen by the HTTP layer.
type Catalog interface {
	List(ctx context.Context) ([]model.Collection, error)
	Get(ctx context.Context, id uint64) (model.Collection, error)
	Create(ctx context.Context, name string, image service.Upload) (model.Collection, error)
}

// RoutePurger drops cached responses for a route.
type RoutePurger interface {
	PurgeRoute(ctx context.Context, route string) error
}

// CollectionHandler serves the storefront collections.
type CollectionHandler struct {
	catalog  Catalog
	cache    RoutePurger
	log      logging.Logger
	timeout  time.Duration
	maxBytes int64
}

// NewCollectionHandler wires the catalog handlers. cache is purged after a
// successful create so the listing reflects the new collection; uploads
// larger than maxUploadBytes are rejected.
func NewCollectionHandler(catalog Catalog, cache RoutePurger, log logging.Logger, timeout time.Duration, maxUploadBytes int64) *CollectionHandler {
	return &CollectionHandler{catalog: catalog, cache: cache, log: log, timeout: timeout, maxBytes: maxUploadBytes}
}

// List returns every collection as a bare JSON array.
func (h *CollectionHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	items, err := h.catalog.List(ctx)
	if err != nil {
		return serverError(c, h.log, "list collections failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /collections/:id and answers 404 for unknown or
// malformed ids.
func (h *CollectionHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusNotFound, "Collection not found")
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	col, err := h.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Collection not found")
		}
		return serverError(c, h.log, "get collection failed", err)
	}
	return c.JSON(http.StatusOK, col)
}

// Create adds a collection from multipart fields name and image. Admin only.
func (h *CollectionHandler) Create(c echo.Context, id utils.Identity) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if err := validation.Validate(name, validation.Required, validation.Length(1, 200)); err != nil {
		return fail(c, http.StatusBadRequest, "name: "+err.Error())
	}
	image, err := readImage(c, "image", h.maxBytes)
	if err != nil {
		var bad errBadUpload
		if errors.As(err, &bad) {
			return fail(c, http.StatusBadRequest, bad.msg)
		}
		return serverError(c, h.log, "read upload failed", err)
	}
	if image == nil {
		return fail(c, http.StatusBadRequest, "image: cannot be blank")
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	col, err := h.catalog.Create(ctx, name, *image)
	if err != nil {
		return serverError(c, h.log, "create collection failed", err)
	}
	if err := h.cache.PurgeRoute(ctx, "/collections"); err != nil {
		h.log.Warn(ctx, "purge collections cache failed", "error", err)
	}
	h.log.Info(ctx, "collection created", "collection_id", col.ID, "by", id.AccountID)
	return c.JSON(http.StatusCreated, col)
}
