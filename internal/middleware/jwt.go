package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/logging"
	"github.com/iliyamo/trendaura-auth/internal/utils"
)

// ErrMissingToken is returned by Authenticate when no bearer token is sent.
var ErrMissingToken = errors.New("missing bearer token")

// Authenticator validates a raw session token.
type Authenticator interface {
	Validate(raw string) (utils.Identity, error)
}

// AuthedHandler is a handler that receives the caller's identity as an
// argument instead of reading it from the echo context.
type AuthedHandler func(c echo.Context, id utils.Identity) error

// Authenticate resolves an Authorization header value to an identity.
func Authenticate(a Authenticator, header string) (utils.Identity, error) {
	raw, ok := bearerToken(header)
	if !ok {
		return utils.Identity{}, ErrMissingToken
	}
	return a.Validate(raw)
}

// Auth guards protected routes.
type Auth struct {
	tokens Authenticator
	log    logging.Logger
}

// NewAuth builds the authentication middleware. tokens validates bearer
// tokens; log receives one debug line per rejected request.
func NewAuth(tokens Authenticator, log logging.Logger) *Auth {
	return &Auth{tokens: tokens, log: log}
}

// RequireAuth adapts h into an echo handler that answers 401 unless the
// request carries a valid bearer token. Missing, malformed and expired
// tokens look the same to the client.
func (a *Auth) RequireAuth(h AuthedHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := Authenticate(a.tokens, c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			a.log.Debug(c.Request().Context(), "authentication rejected",
				"path", c.Path(), "expired", errors.Is(err, utils.ErrExpiredToken), "error", err)
			return deny(c, http.StatusUnauthorized)
		}
		return h(c, id)
	}
}
