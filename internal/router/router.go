// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/handler"
	"github.com/iliyamo/trendaura-auth/internal/middleware"
	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/storage"
)

// Handlers groups everything the routes dispatch to.
type Handlers struct {
	Auth          *handler.AuthHandler
	Profiles      *handler.ProfileHandler
	Collections   *handler.CollectionHandler
	Notifications *handler.NotificationHandler

	// Assets is the upload backend. When it is a local directory its files
	// are served under the store's URL prefix; S3 refs are absolute URLs and
	// need no route.
	Assets storage.Store
}

// RegisterRoutes registers routes that do not require authentication and
// carry no domain logic.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and the caller's own view.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth *middleware.Auth) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/verify-email", a.VerifyEmail)
	g.GET("/me", auth.RequireAuth(a.Me))
}

// RegisterProfiles registers the public profile view and the update
// endpoint.
func RegisterProfiles(e *echo.Echo, p *handler.ProfileHandler, auth *middleware.Auth) {
	e.GET("/profile/:userId", p.GetProfile)
	e.PUT("/profile", auth.RequireAuth(p.UpdateProfile))
}

// RegisterCollections registers the catalog. Reads are cached; creating a
// collection requires the ADMIN role.
func RegisterCollections(e *echo.Echo, h *handler.CollectionHandler, auth *middleware.Auth, cache *middleware.ResponseCache) {
	e.GET("/collections", h.List, cache.Middleware())
	e.GET("/collections/:id", h.Get, cache.Middleware())
	e.POST("/collections", auth.RequireRole(h.Create, model.RoleAdmin))
}

// RegisterNotifications registers the raw mail endpoints.
func RegisterNotifications(e *echo.Echo, n *handler.NotificationHandler) {
	e.POST("/send-verification-email", n.SendVerification)
	e.POST("/send-login-notification", n.SendLogin)
}

// RegisterAssets serves stored uploads so the refs returned by a
// LocalStore resolve to their bytes.
func RegisterAssets(e *echo.Echo, assets storage.Store) {
	if local, ok := assets.(*storage.LocalStore); ok {
		e.Static(local.Prefix(), local.Dir())
	}
}

// Register wires every route group.
func Register(e *echo.Echo, h Handlers, auth *middleware.Auth, cache *middleware.ResponseCache) {
	RegisterRoutes(e)
	RegisterAuth(e, h.Auth, auth)
	RegisterProfiles(e, h.Profiles, auth)
	RegisterCollections(e, h.Collections, auth, cache)
	RegisterNotifications(e, h.Notifications)
	RegisterAssets(e, h.Assets)
}
