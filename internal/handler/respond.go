package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trendaura-auth/internal/errutil"
	"github.com/iliyamo/trendaura-auth/internal/logging"
)

const msgServerError = "Something went wrong on the server"

// fail writes the uniform failure body.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// serverError logs err with its context and answers 500 without leaking
// detail to the client.
func serverError(c echo.Context, log logging.Logger, msg string, err error) error {
	errutil.LogError(c.Request().Context(), log, msg, err)
	return fail(c, 500, msgServerError)
}

// withTimeout bounds the storage work done for one request.
func withTimeout(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(c.Request().Context(), d)
}
