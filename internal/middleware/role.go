package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // status codes for the 403 answer

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/utils"
)

// RequireRole is RequireAuth plus a role check. The roles accepted should
// match the values carried in the token's "role" claim (model.RoleUser,
// model.RoleAdmin). A caller without a valid token gets the usual 401; an
// authenticated caller whose role is not in roles gets 403 and h is never
// invoked.
func (a *Auth) RequireRole(h AuthedHandler, roles ...string) echo.HandlerFunc {
	// Set of allowed roles; the value is always true when present.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return a.RequireAuth(func(c echo.Context, id utils.Identity) error {
		if !allowed[id.Role] {
			return deny(c, http.StatusForbidden)
		}
		// Role accepted: hand the identity on to the wrapped handler.
		return h(c, id)
	})
}
