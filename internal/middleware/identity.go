package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	// The scheme is matched case-sensitively, as clients send it.
	raw, ok := strings.CutPrefix(header, "Bearer ")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

// deny writes the uniform rejection body. Every 401 carries the same
// message whatever the cause, so clients cannot tell why a token was
// refused.
func deny(c echo.Context, status int) error {
	msg := "Not authorized"
	if status == http.StatusForbidden {
		msg = "Forbidden"
	}
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}
