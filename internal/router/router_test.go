package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trendaura-auth/internal/config"
	"github.com/iliyamo/trendaura-auth/internal/handler"
	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/middleware"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/storage"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

func newServer(t *testing.T) (*echo.Echo, *utils.TokenService) {
	t.Helper()
	e, tokens, _ := newServerWithAssets(t)
	return e, tokens
}

func newServerWithAssets(t *testing.T) (*echo.Echo, *utils.TokenService, *storage.LocalStore) {
	t.Helper()
	assets, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	log := logging.Discard()
	tokens := utils.NewTokenService("router-secret", time.Hour)
	auth := middleware.NewAuth(tokens, log)
	cache := middleware.NewResponseCache(config.CacheConfig{}, nil, log)

	e := echo.New()
	Register(e, Handlers{
		Auth:          handler.NewAuthHandler(nil, log, time.Second),
		Profiles:      handler.NewProfileHandler(nil, log, time.Second, 1<<20),
		Collections:   handler.NewCollectionHandler(nil, cache, log, time.Second, 1<<20),
		Notifications: handler.NewNotificationHandler(nil),
		Assets:        assets,
	}, auth, cache)
	return e, tokens, assets
}

func TestRoutesAreRegistered(t *testing.T) {
	e, _ := newServer(t)
	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"POST /auth/register",
		"POST /auth/login",
		"POST /auth/verify-email",
		"GET /auth/me",
		"GET /profile/:userId",
		"PUT /profile",
		"GET /collections",
		"GET /collections/:id",
		"POST /collections",
		"POST /send-verification-email",
		"POST /send-login-notification",
	} {
		assert.True(t, got[want], want)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newServer(t)
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodPut, "/profile"},
		{http.MethodPost, "/collections"},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.path)
		assert.JSONEq(t, `{"success":false,"message":"Not authorized"}`, rec.Body.String())
	}
}

func TestCreateCollectionNeedsAdmin(t *testing.T) {
	e, tokens := newServer(t)
	tok, err := tokens.Issue(5, model.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/collections", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthz(t *testing.T) {
	e, _ := newServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStoredAssetIsServed(t *testing.T) {
	e, _, assets := newServerWithAssets(t)
	png := []byte("\x89PNG\r\n\x1a\nfake-image-bytes")
	ref, err := assets.Store(context.Background(), png, "avatar.png")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ref, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())

	require.NoError(t, assets.Delete(context.Background(), ref))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ref, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
