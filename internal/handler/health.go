package handler // HTTP handlers for the account, profile and catalog API

import (
	"net/http" // status codes

	"github.com/labstack/echo/v4" // web framework
)

// Health is a liveness endpoint used by load balancers and monitoring to
// check that the process is serving requests. It deliberately does not
// touch the database or Redis, so a slow dependency never marks the
// instance dead. It returns a plain text "ok" with HTTP 200.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok") // plain text body
}
