// Package errutil logs errors with the structured context attached by oops.
package errutil

import (
	"context"

	"github.com/samber/oops"

	"github.com/iliyamo/trendaura-auth/internal/logging"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors the code and context map are logged alongside the message;
// plain errors are logged as a string.
func LogError(ctx context.Context, log logging.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{"error", oopsErr.Error()}
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			attrs = append(attrs, "context", c)
		}
		log.Error(ctx, msg, attrs...)
		return
	}
	log.Error(ctx, msg, "error", err)
}
